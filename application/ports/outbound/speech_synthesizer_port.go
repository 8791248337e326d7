package outbound

import (
	"context"

	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type SynthesizeSpeechRequest struct {
	Text  string
	Voice string
}

// SpeechSynthesizerPort returns raw PCM samples with the format the backend
// declared for them. The assembler, not the adapter, decides whether that
// format is acceptable.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, req SynthesizeSpeechRequest) ([]byte, domain.AudioFormat, error)
}
