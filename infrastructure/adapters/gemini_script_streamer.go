package adapters

import (
	"context"
	"encoding/json"
	"io"

	"github.com/donovanhide/eventsource"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
)

const maxStreamRetries = 3

type geminiScriptStreamer struct {
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
	workerPool   outbound.TaskDispatcher
}

// NewGeminiScriptStreamer streams dialogue text over the SSE variant of
// generateContent, one text chunk per event.
func NewGeminiScriptStreamer(geminiConfig *config.GeminiConfig, workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) outbound.ScriptStreamerPort {
	return &geminiScriptStreamer{
		logger:       logger,
		geminiConfig: geminiConfig,
		workerPool:   workerPool,
	}
}

func (g *geminiScriptStreamer) Stream(ctx context.Context, req outbound.StreamScriptRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	newCtx, cancel := context.WithCancel(ctx)
	retryCount := 0

	err := g.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer cancel()

		payload := geminiRequest{
			Contents:         []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
			GenerationConfig: &geminiGenerationConfig{Temperature: &req.Temperature},
		}
		httpReq, err := newGeminiRequest(newCtx, g.geminiConfig, req.Model, "streamGenerateContent?alt=sse", payload)
		if err != nil {
			g.logger.Error(err, "Failed to create HTTP request for script stream")
			errCh <- err
			return
		}

		stream, err := eventsource.SubscribeWithRequest("", httpReq)
		if err != nil {
			g.logger.Error(err, "Failed to subscribe to script stream")
			errCh <- err
			return
		}
		defer stream.Close()

		for {
			select {
			case <-newCtx.Done():
				return
			case ev := <-stream.Events:
				chunk, err := g.extractChunk(ev)
				if err != nil {
					errCh <- err
					return
				}
				if chunk != "" {
					select {
					case out <- chunk:
					case <-newCtx.Done():
						return
					}
				}
				retryCount = 0
			case err := <-stream.Errors:
				if err == io.EOF {
					g.logger.Debug("Script stream closed")
					return
				}
				if retryCount < maxStreamRetries {
					g.logger.WarnWithFields("Error occurred during streaming, retrying", map[string]interface{}{
						"retry_count": retryCount,
					})
					retryCount++
					continue
				}
				g.logger.Error(err, "Error occurred during streaming, max retries reached")
				errCh <- err
				return
			}
		}
	})
	if err != nil {
		g.logger.Error(err, "Failed to submit task to worker pool")
		errCh <- err
		close(out)
		close(errCh)
		cancel()
	}

	return out, errCh
}

func (g *geminiScriptStreamer) extractChunk(event eventsource.Event) (string, error) {
	var chunk geminiResponse
	if err := json.Unmarshal([]byte(event.Data()), &chunk); err != nil {
		g.logger.Error(err, "Failed to unmarshal stream event data")
		return "", err
	}
	if len(chunk.Candidates) == 0 {
		return "", nil
	}

	var text string
	for _, part := range chunk.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}
