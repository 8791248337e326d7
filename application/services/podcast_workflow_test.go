package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
	"github.com/PritamPatil2603/podcast-creator-ai/infrastructure/adapters"
)

type fakeRequester struct {
	kind    domain.SourceKind
	calls   int32
	request func(input domain.RunInput) (domain.Finding, error)
}

func (f *fakeRequester) Kind() domain.SourceKind {
	return f.kind
}

func (f *fakeRequester) Request(_ context.Context, input domain.RunInput) (domain.Finding, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.request(input)
}

func (f *fakeRequester) callCount() int {
	return int(atomic.LoadInt32(&f.calls))
}

type fakeSynthesizer struct {
	report domain.SynthesizedReport
	err    error
}

func (f *fakeSynthesizer) Synthesize(context.Context, inbound.SynthesizeParams) (domain.SynthesizedReport, error) {
	return f.report, f.err
}

type fakeDialogueWriter struct {
	script domain.PodcastScript
	err    error
	write  func(ctx context.Context) (domain.PodcastScript, error)
}

func (f *fakeDialogueWriter) WriteScript(ctx context.Context, _ inbound.WriteScriptParams) (domain.PodcastScript, error) {
	if f.write != nil {
		return f.write(ctx)
	}
	return f.script, f.err
}

type fakeAudioAssembler struct {
	artifact domain.AudioArtifact
	err      error
}

func (f *fakeAudioAssembler) Render(context.Context, domain.PodcastScript) (domain.AudioArtifact, error) {
	return f.artifact, f.err
}

type fakeMetadataGenerator struct {
	metadata domain.EpisodeMetadata
	err      error
}

func (f *fakeMetadataGenerator) Summarize(context.Context, inbound.SummarizeParams) (domain.EpisodeMetadata, error) {
	return f.metadata, f.err
}

type workflowFixture struct {
	researcher        *fakeRequester
	videoAnalyzer     *fakeRequester
	synthesizer       *fakeSynthesizer
	dialogueWriter    *fakeDialogueWriter
	audioAssembler    *fakeAudioAssembler
	metadataGenerator *fakeMetadataGenerator
	events            []domain.StageEvent
	workflow          inbound.PodcastWorkflowPort
}

func okFinding(kind domain.SourceKind) domain.Finding {
	return domain.Finding{Kind: kind, Summary: "usable content"}
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	return newWorkflowFixtureWithConfig(t, &config.WorkflowConfig{
		CallTimeout:    5 * time.Second,
		RequestRetries: 3,
		RetryBackoff:   time.Millisecond,
	})
}

func newWorkflowFixtureWithConfig(t *testing.T, workflowConfig *config.WorkflowConfig) *workflowFixture {
	t.Helper()

	workerPool, err := ants.NewPool(20)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	t.Cleanup(workerPool.Release)

	fixture := &workflowFixture{
		researcher: &fakeRequester{
			kind: domain.ResearchSource,
			request: func(domain.RunInput) (domain.Finding, error) {
				return okFinding(domain.ResearchSource), nil
			},
		},
		videoAnalyzer: &fakeRequester{
			kind: domain.VideoSource,
			request: func(domain.RunInput) (domain.Finding, error) {
				return okFinding(domain.VideoSource), nil
			},
		},
		synthesizer: &fakeSynthesizer{
			report: domain.SynthesizedReport{Body: "report", ExecutiveSummary: "summary"},
		},
		dialogueWriter: &fakeDialogueWriter{
			script: domain.PodcastScript{Lines: []domain.ScriptLine{
				{Speaker: domain.HostSpeaker, Text: "hello", Index: 0},
			}},
		},
		audioAssembler: &fakeAudioAssembler{
			artifact: domain.AudioArtifact{WAV: []byte("RIFF"), DurationSeconds: 1},
		},
		metadataGenerator: &fakeMetadataGenerator{
			metadata: domain.EpisodeMetadata{Title: "Episode"},
		},
	}

	fixture.workflow = NewPodcastWorkflow(adapters.NewZerologWrapper(), workerPool,
		fixture.researcher, fixture.videoAnalyzer, fixture.synthesizer, fixture.dialogueWriter,
		fixture.audioAssembler, fixture.metadataGenerator, workflowConfig)
	return fixture
}

func (f *workflowFixture) run(t *testing.T, input domain.RunInput) (domain.PodcastBundle, error) {
	t.Helper()
	return f.workflow.Run(context.Background(), inbound.RunParams{
		RunID: "run-1",
		Input: input,
		OnStage: func(event domain.StageEvent) {
			f.events = append(f.events, event)
		},
	})
}

func (f *workflowFixture) visitedStates() []domain.RunState {
	states := make([]domain.RunState, 0, len(f.events))
	for _, event := range f.events {
		states = append(states, event.State)
	}
	return states
}

func assertStates(t *testing.T, got []domain.RunState, want ...domain.RunState) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected states %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected states %v, got %v", want, got)
		}
	}
}

func assertStageError(t *testing.T, err error, stage domain.RunState, sentinel error) {
	t.Helper()
	var stageErr *domain.StageError
	if !errors.As(err, &stageErr) {
		t.Fatal("expected a StageError, got:", err)
	}
	if stageErr.Stage != stage {
		t.Fatalf("expected failure at %s, got %s (%v)", stage, stageErr.Stage, err)
	}
	if sentinel != nil && !errors.Is(err, sentinel) {
		t.Fatalf("expected error chain to contain %v, got %v", sentinel, err)
	}
}

func TestPodcastWorkflow_TopicOnly(t *testing.T) {
	fixture := newWorkflowFixture(t)

	bundle, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	if err != nil {
		t.Fatal("Failed to run workflow:", err)
	}

	if bundle.RunID != "run-1" {
		t.Errorf("unexpected run id %q", bundle.RunID)
	}
	if bundle.Report.Body != "report" || bundle.Metadata.Title != "Episode" {
		t.Errorf("bundle not assembled from stage outputs: %+v", bundle)
	}
	if fixture.researcher.callCount() != 1 {
		t.Errorf("expected 1 research call, got %d", fixture.researcher.callCount())
	}
	if fixture.videoAnalyzer.callCount() != 0 {
		t.Errorf("expected no video calls, got %d", fixture.videoAnalyzer.callCount())
	}

	assertStates(t, fixture.visitedStates(),
		domain.StateValidating, domain.StateResearching, domain.StateSynthesizing,
		domain.StateScriptWriting, domain.StateRendering, domain.StateDone)
}

func TestPodcastWorkflow_BothSources(t *testing.T) {
	fixture := newWorkflowFixture(t)

	_, err := fixture.run(t, domain.RunInput{
		Topic:           "fusion energy",
		VideoURL:        "https://youtu.be/abc",
		DurationMinutes: 5,
	})
	if err != nil {
		t.Fatal("Failed to run workflow:", err)
	}

	if fixture.researcher.callCount() != 1 || fixture.videoAnalyzer.callCount() != 1 {
		t.Errorf("expected both requesters invoked once, got %d and %d",
			fixture.researcher.callCount(), fixture.videoAnalyzer.callCount())
	}

	assertStates(t, fixture.visitedStates(),
		domain.StateValidating, domain.StateResearching, domain.StateAnalyzingVideo,
		domain.StateSynthesizing, domain.StateScriptWriting, domain.StateRendering, domain.StateDone)
}

func TestPodcastWorkflow_InvalidInput(t *testing.T) {
	fixture := newWorkflowFixture(t)

	_, err := fixture.run(t, domain.RunInput{DurationMinutes: 5})
	assertStageError(t, err, domain.StateValidating, domain.ErrInvalidInput)

	if fixture.researcher.callCount() != 0 || fixture.videoAnalyzer.callCount() != 0 {
		t.Error("requesters must not be invoked for invalid input")
	}
	assertStates(t, fixture.visitedStates(), domain.StateValidating, domain.StateFailed)
}

func TestPodcastWorkflow_VideoOnlyNoContent(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.videoAnalyzer.request = func(domain.RunInput) (domain.Finding, error) {
		return domain.Finding{}, domain.ErrNoContent
	}

	_, err := fixture.run(t, domain.RunInput{VideoURL: "https://youtu.be/abc", DurationMinutes: 5})
	assertStageError(t, err, domain.StateSynthesizing, domain.ErrSynthesisEmpty)

	assertStates(t, fixture.visitedStates(),
		domain.StateValidating, domain.StateAnalyzingVideo, domain.StateSynthesizing, domain.StateFailed)
}

func TestPodcastWorkflow_SurvivesOneFailedSource(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.videoAnalyzer.request = func(domain.RunInput) (domain.Finding, error) {
		return domain.Finding{}, errors.New("video backend rejected the url")
	}

	bundle, err := fixture.run(t, domain.RunInput{
		Topic:           "fusion energy",
		VideoURL:        "https://youtu.be/abc",
		DurationMinutes: 5,
	})
	if err != nil {
		t.Fatal("expected run to survive a single failed source, got:", err)
	}
	if bundle.RunID != "run-1" {
		t.Error("expected a complete bundle")
	}
}

func TestPodcastWorkflow_RetriesTransientFailures(t *testing.T) {
	fixture := newWorkflowFixture(t)
	var attempts int32
	fixture.researcher.request = func(domain.RunInput) (domain.Finding, error) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			return domain.Finding{}, domain.ErrUpstreamUnavailable
		}
		return okFinding(domain.ResearchSource), nil
	}

	_, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	if err != nil {
		t.Fatal("expected retries to recover the run, got:", err)
	}
	if fixture.researcher.callCount() != 3 {
		t.Errorf("expected 3 attempts, got %d", fixture.researcher.callCount())
	}
}

func TestPodcastWorkflow_TransientFailureExhaustsRetries(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.researcher.request = func(domain.RunInput) (domain.Finding, error) {
		return domain.Finding{}, domain.ErrRateLimited
	}

	_, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	assertStageError(t, err, domain.StateResearching, domain.ErrRateLimited)

	if fixture.researcher.callCount() != 3 {
		t.Errorf("expected 3 attempts before giving up, got %d", fixture.researcher.callCount())
	}
}

func TestPodcastWorkflow_NoContentNotRetried(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.researcher.request = func(domain.RunInput) (domain.Finding, error) {
		return domain.Finding{}, domain.ErrNoContent
	}

	_, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	assertStageError(t, err, domain.StateSynthesizing, domain.ErrSynthesisEmpty)

	if fixture.researcher.callCount() != 1 {
		t.Errorf("expected a single attempt for NoContent, got %d", fixture.researcher.callCount())
	}
}

func TestPodcastWorkflow_ScriptWritingTimeout(t *testing.T) {
	fixture := newWorkflowFixtureWithConfig(t, &config.WorkflowConfig{
		CallTimeout:    50 * time.Millisecond,
		RequestRetries: 1,
		RetryBackoff:   time.Millisecond,
	})
	fixture.dialogueWriter.write = func(ctx context.Context) (domain.PodcastScript, error) {
		<-ctx.Done()
		return domain.PodcastScript{}, ctx.Err()
	}

	start := time.Now()
	_, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	assertStageError(t, err, domain.StateScriptWriting, context.DeadlineExceeded)

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("run blocked %v past the 50ms call timeout", elapsed)
	}
}

func TestPodcastWorkflow_BothSourcesFailDeterministically(t *testing.T) {
	researchErr := errors.New("research backend rejected the query")
	videoErr := errors.New("video backend rejected the url")

	for i := 0; i < 10; i++ {
		fixture := newWorkflowFixture(t)
		fixture.researcher.request = func(domain.RunInput) (domain.Finding, error) {
			return domain.Finding{}, researchErr
		}
		fixture.videoAnalyzer.request = func(domain.RunInput) (domain.Finding, error) {
			return domain.Finding{}, videoErr
		}

		_, err := fixture.run(t, domain.RunInput{
			Topic:           "fusion energy",
			VideoURL:        "https://youtu.be/abc",
			DurationMinutes: 5,
		})
		assertStageError(t, err, domain.StateResearching, researchErr)
	}
}

func TestPodcastWorkflow_ScriptFailure(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.dialogueWriter.err = domain.ErrEmptyScript

	_, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	assertStageError(t, err, domain.StateScriptWriting, domain.ErrEmptyScript)

	assertStates(t, fixture.visitedStates(),
		domain.StateValidating, domain.StateResearching, domain.StateSynthesizing,
		domain.StateScriptWriting, domain.StateFailed)
}

func TestPodcastWorkflow_RenderFailure(t *testing.T) {
	fixture := newWorkflowFixture(t)
	fixture.audioAssembler.err = domain.ErrRender

	bundle, err := fixture.run(t, domain.RunInput{Topic: "fusion energy", DurationMinutes: 5})
	assertStageError(t, err, domain.StateRendering, domain.ErrRender)

	if len(bundle.Audio.WAV) != 0 {
		t.Error("failed runs must not surface a partial bundle")
	}
}
