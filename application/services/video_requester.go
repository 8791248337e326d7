package services

import (
	"context"
	"fmt"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type videoRequester struct {
	logger      outbound.LoggerPort
	analyzer    outbound.VideoAnalyzerPort
	videoConfig *config.VideoConfig
}

func NewVideoRequester(logger outbound.LoggerPort, analyzer outbound.VideoAnalyzerPort,
	videoConfig *config.VideoConfig) inbound.FindingRequesterPort {
	return &videoRequester{
		logger:      logger,
		analyzer:    analyzer,
		videoConfig: videoConfig,
	}
}

func (v *videoRequester) Kind() domain.SourceKind {
	return domain.VideoSource
}

func (v *videoRequester) Request(ctx context.Context, input domain.RunInput) (domain.Finding, error) {
	text, err := v.analyzer.Analyze(ctx, outbound.AnalyzeVideoRequest{
		VideoURL: input.VideoURL,
		Prompt:   v.buildPrompt(input),
		Model:    v.videoConfig.Model,
	})
	if err != nil {
		v.logger.ErrorWithFields(err, "Video analysis failed", map[string]interface{}{
			"video_url": input.VideoURL,
		})
		return domain.Finding{}, err
	}

	finding := domain.Finding{
		Kind:    domain.VideoSource,
		Summary: text,
	}
	if finding.Empty() {
		return domain.Finding{}, fmt.Errorf("video analysis of %s: %w", input.VideoURL, domain.ErrNoContent)
	}

	return finding, nil
}

func (v *videoRequester) buildPrompt(input domain.RunInput) string {
	topic := input.Topic
	if topic == "" {
		topic = "this video content"
	}
	return fmt.Sprintf(`Analyze this video for creating a podcast conversation about: %s

Extract and focus on:
1. Main themes and key messages
2. Important insights or revelations
3. Interesting quotes or statements
4. Visual elements worth describing
5. Context and background information
6. Actionable takeaways
7. Discussion-worthy points

Structure your analysis to be suitable for a %d-minute podcast conversation.`,
		topic, input.DurationMinutes)
}
