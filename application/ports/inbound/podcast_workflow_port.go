package inbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type RunParams struct {
	RunID string
	Input domain.RunInput
	// OnStage, when set, is invoked once per state the run enters. It is
	// called from the workflow goroutine and must not block.
	OnStage func(domain.StageEvent)
}

// PodcastWorkflowPort drives one run end to end. A nil error means the
// bundle is complete; a non-nil error is always a *domain.StageError and
// the bundle is zero.
type PodcastWorkflowPort interface {
	Run(ctx context.Context, params RunParams) (domain.PodcastBundle, error)
}
