package outbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type GenerateTextRequest struct {
	Prompt      string
	Model       string
	Temperature float64
}

// TextGeneratorPort is a single blocking call to the text generation
// backend and carries no retry or timeout policy of its own.
type TextGeneratorPort interface {
	Generate(ctx context.Context, req GenerateTextRequest) (string, error)
}

// GroundedSearchPort is the search-grounded variant; the backend returns
// the generated text together with the web sources it grounded on.
type GroundedSearchPort interface {
	Search(ctx context.Context, req GenerateTextRequest) (string, []domain.Citation, error)
}
