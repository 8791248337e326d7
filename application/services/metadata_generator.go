package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

const maxTitleLength = 60

type metadataResponse struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TopicsCovered []string `json:"topics_covered"`
}

type metadataGenerator struct {
	logger          outbound.LoggerPort
	textGenerator   outbound.TextGeneratorPort
	synthesisConfig *config.SynthesisConfig
}

func NewMetadataGenerator(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort,
	synthesisConfig *config.SynthesisConfig) inbound.MetadataGeneratorPort {
	return &metadataGenerator{
		logger:          logger,
		textGenerator:   textGenerator,
		synthesisConfig: synthesisConfig,
	}
}

func (m *metadataGenerator) Summarize(ctx context.Context, params inbound.SummarizeParams) (domain.EpisodeMetadata, error) {
	text, err := m.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:      m.buildPrompt(params),
		Model:       m.synthesisConfig.Model,
		Temperature: m.synthesisConfig.MetadataTemperature,
	})
	if err != nil {
		return domain.EpisodeMetadata{}, err
	}

	parsed := m.parseResponse(text, params.Topic)

	return domain.EpisodeMetadata{
		Title:                   TruncateAtWord(parsed.Title, maxTitleLength),
		Description:             parsed.Description,
		Topics:                  dedupeTopics(parsed.TopicsCovered),
		DurationEstimateSeconds: float64(params.Script.WordCount()) / wordsPerMinute * 60,
	}, nil
}

func (m *metadataGenerator) parseResponse(text string, topic string) metadataResponse {
	var parsed metadataResponse
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil ||
		strings.TrimSpace(parsed.Title) == "" {
		m.logger.Warn("Metadata response was not valid JSON, using fallback")
		fallbackTopic := topic
		if fallbackTopic == "" {
			fallbackTopic = "the content"
		}
		return metadataResponse{
			Title:         fmt.Sprintf("Podcast: %s", fallbackTopic),
			Description:   fmt.Sprintf("An insightful discussion about %s", fallbackTopic),
			TopicsCovered: []string{fallbackTopic},
		}
	}
	return parsed
}

func (m *metadataGenerator) buildPrompt(params inbound.SummarizeParams) string {
	return fmt.Sprintf(`Create engaging podcast metadata for a %d-minute episode about "%s".

CONTENT SUMMARY:
%s

KEY INSIGHTS:
%s

Generate:
1. Catchy, professional podcast title (60 characters max)
2. Engaging description (150-200 words) that would make people want to listen
3. List of 3-5 main topics covered

Format as JSON:
{
    "title": "Engaging Podcast Title",
    "description": "Professional description that hooks the listener...",
    "topics_covered": ["topic 1", "topic 2", "topic 3"]
}`,
		params.DurationMinutes, params.Topic,
		params.Report.ExecutiveSummary,
		strings.Join(params.Report.KeyInsights, ", "))
}

// TruncateAtWord caps text at limit characters without ever splitting a
// word. A single word longer than the limit is hard-cut.
func TruncateAtWord(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	window := string(runes[:limit+1])
	cut := strings.LastIndex(window, " ")
	if cut <= 0 {
		return string(runes[:limit])
	}
	return strings.TrimRight(window[:cut], " ,;:.-")
}

func dedupeTopics(topics []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		key := strings.ToLower(topic)
		if topic == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, topic)
	}
	return out
}
