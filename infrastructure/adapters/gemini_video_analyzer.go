package adapters

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
)

type geminiVideoAnalyzer struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
}

func NewGeminiVideoAnalyzer(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig,
	logger outbound.LoggerPort) outbound.VideoAnalyzerPort {
	return &geminiVideoAnalyzer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
	}
}

func (g *geminiVideoAnalyzer) Analyze(ctx context.Context, req outbound.AnalyzeVideoRequest) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{
			{FileData: &geminiFileData{FileURI: req.VideoURL}},
			{Text: req.Prompt},
		}}},
	}

	httpReq, err := newGeminiRequest(ctx, g.geminiConfig, req.Model, "generateContent", payload)
	if err != nil {
		g.logger.ErrorWithFields(err, "Failed to construct the video analysis request", map[string]interface{}{
			"video_url": req.VideoURL,
		})
		return "", err
	}

	body, err := g.FetchContent(httpReq)
	if err != nil {
		return "", err
	}

	text, _, err := extractCandidate(body)
	return text, err
}
