package inbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type AudioAssemblerPort interface {
	Render(ctx context.Context, script domain.PodcastScript) (domain.AudioArtifact, error)
}
