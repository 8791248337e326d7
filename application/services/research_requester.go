package services

import (
	"context"
	"fmt"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type researchRequester struct {
	logger         outbound.LoggerPort
	search         outbound.GroundedSearchPort
	researchConfig *config.ResearchConfig
}

func NewResearchRequester(logger outbound.LoggerPort, search outbound.GroundedSearchPort,
	researchConfig *config.ResearchConfig) inbound.FindingRequesterPort {
	return &researchRequester{
		logger:         logger,
		search:         search,
		researchConfig: researchConfig,
	}
}

func (r *researchRequester) Kind() domain.SourceKind {
	return domain.ResearchSource
}

func (r *researchRequester) Request(ctx context.Context, input domain.RunInput) (domain.Finding, error) {
	text, citations, err := r.search.Search(ctx, outbound.GenerateTextRequest{
		Prompt:      r.buildPrompt(input),
		Model:       r.researchConfig.Model,
		Temperature: r.researchConfig.Temperature,
	})
	if err != nil {
		r.logger.ErrorWithFields(err, "Research request failed", map[string]interface{}{
			"topic": input.Topic,
		})
		return domain.Finding{}, err
	}

	finding := domain.Finding{
		Kind:      domain.ResearchSource,
		Summary:   text,
		Citations: citations,
	}
	if finding.Empty() {
		return domain.Finding{}, fmt.Errorf("research for %q: %w", input.Topic, domain.ErrNoContent)
	}

	r.logger.DebugWithFields("Research finding produced", map[string]interface{}{
		"topic":     input.Topic,
		"citations": len(citations),
	})
	return finding, nil
}

func (r *researchRequester) buildPrompt(input domain.RunInput) string {
	return fmt.Sprintf(`Research this topic for creating an engaging podcast conversation: %s

Focus on:
1. Key concepts and definitions
2. Current trends and developments
3. Interesting facts and insights
4. Practical implications
5. Different perspectives or debates
6. Real-world examples or case studies

Provide comprehensive information suitable for a %d-minute podcast discussion.`,
		input.Topic, input.DurationMinutes)
}
