package inbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type SummarizeParams struct {
	Topic           string
	Report          domain.SynthesizedReport
	Script          domain.PodcastScript
	DurationMinutes int
}

type MetadataGeneratorPort interface {
	Summarize(ctx context.Context, params SummarizeParams) (domain.EpisodeMetadata, error)
}
