package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type synthesisResponse struct {
	ExecutiveSummary string   `json:"executive_summary"`
	Narrative        string   `json:"narrative"`
	KeyInsights      []string `json:"key_insights"`
}

type synthesizer struct {
	logger          outbound.LoggerPort
	textGenerator   outbound.TextGeneratorPort
	synthesisConfig *config.SynthesisConfig
}

func NewSynthesizer(logger outbound.LoggerPort, textGenerator outbound.TextGeneratorPort,
	synthesisConfig *config.SynthesisConfig) inbound.SynthesizerPort {
	return &synthesizer{
		logger:          logger,
		textGenerator:   textGenerator,
		synthesisConfig: synthesisConfig,
	}
}

func (s *synthesizer) Synthesize(ctx context.Context, params inbound.SynthesizeParams) (domain.SynthesizedReport, error) {
	usable := make([]domain.Finding, 0, len(params.Findings))
	for _, finding := range params.Findings {
		if !finding.Empty() {
			usable = append(usable, finding)
		}
	}
	if len(usable) == 0 {
		return domain.SynthesizedReport{}, domain.ErrSynthesisEmpty
	}
	// Findings arrive in requester completion order; the report always
	// presents research before video.
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Kind == domain.ResearchSource && usable[j].Kind != domain.ResearchSource
	})

	text, err := s.textGenerator.Generate(ctx, outbound.GenerateTextRequest{
		Prompt:      s.buildPrompt(params.Topic, usable),
		Model:       s.synthesisConfig.Model,
		Temperature: s.synthesisConfig.Temperature,
	})
	if err != nil {
		return domain.SynthesizedReport{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.SynthesizedReport{}, domain.ErrSynthesisEmpty
	}

	parsed := s.parseResponse(text)

	report := domain.SynthesizedReport{
		Body:             s.buildBody(params.Topic, parsed, usable),
		ExecutiveSummary: parsed.ExecutiveSummary,
		KeyInsights:      parsed.KeyInsights,
		Sources:          usable,
	}
	return report, nil
}

func (s *synthesizer) parseResponse(text string) synthesisResponse {
	var parsed synthesisResponse
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil ||
		strings.TrimSpace(parsed.Narrative) == "" {
		// The model ignored the JSON instruction; use the raw text as is.
		s.logger.Warn("Synthesis response was not valid JSON, using raw text")
		return synthesisResponse{
			ExecutiveSummary: text,
			Narrative:        text,
			KeyInsights:      []string{"Key insight from content analysis"},
		}
	}
	if strings.TrimSpace(parsed.ExecutiveSummary) == "" {
		parsed.ExecutiveSummary = parsed.Narrative
	}
	return parsed
}

func (s *synthesizer) buildPrompt(topic string, findings []domain.Finding) string {
	var sections strings.Builder
	both := len(findings) > 1
	for _, finding := range findings {
		switch finding.Kind {
		case domain.ResearchSource:
			sections.WriteString("RESEARCH CONTENT:\n")
		case domain.VideoSource:
			sections.WriteString("VIDEO CONTENT:\n")
		}
		sections.WriteString(finding.Summary)
		sections.WriteString("\n\n")
	}

	crossSource := ""
	if both {
		crossSource = "\nThe executive summary must draw on both the research and the video content."
	}

	return fmt.Sprintf(`You are a content synthesizer for podcast creation. Analyze all the provided content about "%s" and create:

1. A short executive summary (one paragraph)
2. A comprehensive narrative (2-3 paragraphs)
3. A list of 5-7 key insights that would make for engaging podcast discussion

%sFocus on:
- Most interesting and discussion-worthy points
- Practical insights and takeaways
- Surprising or counterintuitive information
- Different perspectives or debates
- Real-world applications%s

Format your response as JSON:
{
    "executive_summary": "short summary...",
    "narrative": "comprehensive narrative...",
    "key_insights": ["insight 1", "insight 2", "insight 3"]
}`, topic, sections.String(), crossSource)
}

func (s *synthesizer) buildBody(topic string, parsed synthesisResponse, findings []domain.Finding) string {
	var body strings.Builder
	title := topic
	if title == "" {
		title = "the provided content"
	}

	fmt.Fprintf(&body, "# Research Report: %s\n\n", title)
	body.WriteString("## Executive Summary\n\n")
	body.WriteString(strings.TrimSpace(parsed.ExecutiveSummary))
	body.WriteString("\n\n## Analysis\n\n")
	body.WriteString(strings.TrimSpace(parsed.Narrative))

	if len(parsed.KeyInsights) > 0 {
		body.WriteString("\n\n## Key Insights\n\n")
		for _, insight := range parsed.KeyInsights {
			fmt.Fprintf(&body, "- %s\n", insight)
		}
	}

	citations := MergeCitations(findings)
	if len(citations) > 0 {
		body.WriteString("\n## Sources\n\n")
		for i, citation := range citations {
			fmt.Fprintf(&body, "%d. %s\n   %s\n", i+1, citation.Title, citation.URL)
		}
	}

	return body.String()
}

// MergeCitations flattens finding citations into one ordered list, research
// sources first, deduplicated by URL with first occurrence winning.
func MergeCitations(findings []domain.Finding) []domain.Citation {
	ordered := make([]domain.Finding, len(findings))
	copy(ordered, findings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind == domain.ResearchSource && ordered[j].Kind != domain.ResearchSource
	})

	seen := make(map[string]bool)
	merged := make([]domain.Citation, 0)
	for _, finding := range ordered {
		for _, citation := range finding.Citations {
			if citation.URL == "" || seen[citation.URL] {
				continue
			}
			seen[citation.URL] = true
			merged = append(merged, citation)
		}
	}
	return merged
}

func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
