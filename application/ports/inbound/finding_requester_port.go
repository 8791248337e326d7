package inbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

// FindingRequesterPort is one content source: one blocking backend call
// producing exactly one Finding. Retries belong to the workflow, not here.
type FindingRequesterPort interface {
	Kind() domain.SourceKind
	Request(ctx context.Context, input domain.RunInput) (domain.Finding, error)
}
