package inbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type SynthesizeParams struct {
	Topic    string
	Findings []domain.Finding
}

type SynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeParams) (domain.SynthesizedReport, error)
}
