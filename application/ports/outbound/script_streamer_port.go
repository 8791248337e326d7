package outbound

import "context"

type StreamScriptRequest struct {
	Prompt      string
	Model       string
	Temperature float64
}

// ScriptStreamerPort streams generated dialogue text chunk by chunk. The
// text channel closes when the stream ends; errors arrive on the second
// channel. Cancelling the context stops the stream.
type ScriptStreamerPort interface {
	Stream(ctx context.Context, req StreamScriptRequest) (<-chan string, <-chan error)
}
