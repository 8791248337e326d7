package inbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type WriteScriptParams struct {
	Topic           string
	Report          domain.SynthesizedReport
	DurationMinutes int
}

type DialogueWriterPort interface {
	WriteScript(ctx context.Context, params WriteScriptParams) (domain.PodcastScript, error)
}
