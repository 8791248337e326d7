package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
	"github.com/PritamPatil2603/podcast-creator-ai/wavcodec"
)

// renderBatch is one speech-synthesis request: a contiguous run of lines
// from the same speaker. Index is the run's position in the script and
// fixes concatenation order no matter when its synthesis call completes.
type renderBatch struct {
	Index   int
	Speaker domain.Speaker
	Text    string
}

type audioAssembler struct {
	logger         outbound.LoggerPort
	workerPool     outbound.TaskDispatcher
	synthesizer    outbound.SpeechSynthesizerPort
	ttsConfig      *config.TtsConfig
	workflowConfig *config.WorkflowConfig
}

func NewAudioAssembler(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	synthesizer outbound.SpeechSynthesizerPort, ttsConfig *config.TtsConfig,
	workflowConfig *config.WorkflowConfig) inbound.AudioAssemblerPort {
	return &audioAssembler{
		logger:         logger,
		workerPool:     workerPool,
		synthesizer:    synthesizer,
		ttsConfig:      ttsConfig,
		workflowConfig: workflowConfig,
	}
}

func (a *audioAssembler) Render(ctx context.Context, script domain.PodcastScript) (domain.AudioArtifact, error) {
	batches := batchBySpeaker(script)
	if len(batches) == 0 {
		return domain.AudioArtifact{}, domain.ErrEmptyScript
	}

	segments, err := a.renderBatches(ctx, batches)
	if err != nil {
		return domain.AudioArtifact{}, err
	}

	expected := a.expectedFormat()
	total := 0
	for _, segment := range segments {
		if segment.Format != expected {
			return domain.AudioArtifact{}, fmt.Errorf("segment %d declared %+v, expected %+v: %w",
				segment.Index, segment.Format, expected, domain.ErrFormatMismatch)
		}
		total += len(segment.PCM)
	}

	// Concatenation strictly follows batch index; segments is already
	// slot-addressed, so this is a straight append pass.
	pcm := make([]byte, 0, total)
	for _, segment := range segments {
		pcm = append(pcm, segment.PCM...)
	}

	wav, err := wavcodec.Encode(expected, pcm)
	if err != nil {
		return domain.AudioArtifact{}, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}

	artifact := domain.AudioArtifact{
		WAV:             wav,
		Format:          expected,
		DurationSeconds: float64(len(pcm)) / float64(expected.ByteRate()),
	}
	a.logger.InfoWithFields("Audio rendered", map[string]interface{}{
		"segments":         len(segments),
		"bytes":            len(wav),
		"duration_seconds": artifact.DurationSeconds,
	})
	return artifact, nil
}

func (a *audioAssembler) renderBatches(ctx context.Context, batches []renderBatch) ([]domain.AudioSegment, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	segments := make([]domain.AudioSegment, len(batches))
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, batch := range batches {
		batch := batch
		wg.Add(1)
		err := a.workerPool.Submit(func() {
			defer wg.Done()
			if newCtx.Err() != nil {
				return
			}
			segment, err := a.renderOne(newCtx, batch)
			if err != nil {
				fail(fmt.Errorf("segment %d: %w: %w", batch.Index, domain.ErrRender, err))
				return
			}
			segments[batch.Index] = segment
		})
		if err != nil {
			wg.Done()
			fail(err)
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return segments, nil
}

func (a *audioAssembler) renderOne(ctx context.Context, batch renderBatch) (domain.AudioSegment, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.workflowConfig.CallTimeout)
	defer cancel()

	pcm, format, err := a.synthesizer.Synthesize(callCtx, outbound.SynthesizeSpeechRequest{
		Text:  batch.Text,
		Voice: a.voiceFor(batch.Speaker),
	})
	if err != nil {
		return domain.AudioSegment{}, err
	}
	if len(pcm) == 0 {
		return domain.AudioSegment{}, domain.ErrNoContent
	}

	return domain.AudioSegment{
		Index:  batch.Index,
		PCM:    pcm,
		Format: format,
	}, nil
}

func (a *audioAssembler) voiceFor(speaker domain.Speaker) string {
	if speaker == domain.ExpertSpeaker {
		return a.ttsConfig.ExpertVoice
	}
	return a.ttsConfig.HostVoice
}

func (a *audioAssembler) expectedFormat() domain.AudioFormat {
	return domain.AudioFormat{
		SampleRate:    a.ttsConfig.SampleRate,
		Channels:      a.ttsConfig.Channels,
		BitsPerSample: a.ttsConfig.BitsPerSample,
	}
}

// batchBySpeaker groups contiguous same-speaker lines into one synthesis
// request each. The grouping depends only on the script, so the rendered
// segment count is deterministic.
func batchBySpeaker(script domain.PodcastScript) []renderBatch {
	batches := make([]renderBatch, 0, len(script.Lines))
	for _, line := range script.Lines {
		if n := len(batches); n > 0 && batches[n-1].Speaker == line.Speaker {
			batches[n-1].Text += " " + line.Text
			continue
		}
		batches = append(batches, renderBatch{
			Index:   len(batches),
			Speaker: line.Speaker,
			Text:    line.Text,
		})
	}
	for i := range batches {
		batches[i].Text = strings.TrimSpace(batches[i].Text)
	}
	return batches
}
