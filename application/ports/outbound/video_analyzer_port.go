package outbound

import "context"

type AnalyzeVideoRequest struct {
	VideoURL string
	Prompt   string
	Model    string
}

type VideoAnalyzerPort interface {
	Analyze(ctx context.Context, req AnalyzeVideoRequest) (string, error)
}
