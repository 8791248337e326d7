package adapters

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type geminiSearchGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

// NewGeminiSearchGenerator returns the grounded-search variant: the same
// generateContent call with the google_search tool enabled, surfacing the
// grounding sources as citations.
func NewGeminiSearchGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.GroundedSearchPort {
	return &geminiSearchGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiSearchGenerator) Search(ctx context.Context, req outbound.GenerateTextRequest) (string, []domain.Citation, error) {
	payload := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
		Tools:            []geminiTool{{GoogleSearch: &struct{}{}}},
		GenerationConfig: &geminiGenerationConfig{Temperature: &req.Temperature},
	}

	httpReq, err := newGeminiRequest(ctx, g.geminiConfig, req.Model, "generateContent", payload)
	if err != nil {
		g.logger.Error(err, "Failed to construct the grounded search request")
		return "", nil, err
	}

	body, err := g.FetchContent(httpReq)
	if err != nil {
		return "", nil, err
	}

	return extractCandidate(body)
}
