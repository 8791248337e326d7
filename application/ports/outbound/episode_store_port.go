package outbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

// EpisodeStorePort persists the rendered audio artifact and returns a
// public URL for it.
type EpisodeStorePort interface {
	Save(ctx context.Context, episodeID string, artifact domain.AudioArtifact) (string, error)
}

// EpisodeRecord is the persisted/published view of a finished episode.
type EpisodeRecord struct {
	EpisodeID       string
	Title           string
	Description     string
	Topics          []string
	DurationSeconds float64
	AudioURL        string
}

type EpisodeCachePort interface {
	Save(ctx context.Context, record EpisodeRecord) error
}

type EpisodePublisherPort interface {
	Publish(ctx context.Context, record EpisodeRecord) error
}
