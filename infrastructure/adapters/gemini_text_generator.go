package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type geminiTextGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiTextGenerator(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.TextGeneratorPort {
	return &geminiTextGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiTextGenerator) Generate(ctx context.Context, req outbound.GenerateTextRequest) (string, error) {
	payload := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: &geminiGenerationConfig{Temperature: &req.Temperature},
	}

	httpReq, err := newGeminiRequest(ctx, g.geminiConfig, req.Model, "generateContent", payload)
	if err != nil {
		g.logger.Error(err, "Failed to construct the Gemini HTTP request")
		return "", err
	}

	body, err := g.FetchContent(httpReq)
	if err != nil {
		return "", err
	}

	text, _, err := extractCandidate(body)
	return text, err
}

// newGeminiRequest builds an authenticated request against the v1beta model API.
func newGeminiRequest(ctx context.Context, cfg *config.GeminiConfig, model string,
	verb string, payload geminiRequest) (*http.Request, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:%s", strings.TrimRight(cfg.ApiUrl, "/"), model, verb)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", cfg.ApiKey)
	return req, nil
}

// extractCandidate pulls the first candidate's text and citations out of a
// generateContent response body. An empty candidate set maps to NoContent.
func extractCandidate(body []byte) (string, []domain.Citation, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", nil, domain.ErrNoContent
	}

	candidate := parsed.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", nil, domain.ErrNoContent
	}

	var citations []domain.Citation
	if candidate.GroundingMetadata != nil {
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := chunk.Web.Title
			if title == "" {
				title = "No title"
			}
			citations = append(citations, domain.Citation{Title: title, URL: chunk.Web.URI})
		}
	}

	return text.String(), citations, nil
}
