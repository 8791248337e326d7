package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/channel_utils"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

// findingResult is one requester's terminal outcome, carried through the
// fan-in channel. Exactly one per invoked requester.
type findingResult struct {
	Kind    domain.SourceKind
	Finding domain.Finding
	Err     error
}

// runContext is the per-run state owned exclusively by the workflow. It is
// discarded when Run returns; nothing in it outlives the run.
type runContext struct {
	id      string
	state   domain.RunState
	visited []domain.RunState
	onStage func(domain.StageEvent)
}

type podcastWorkflow struct {
	logger            outbound.LoggerPort
	workerPool        outbound.TaskDispatcher
	researcher        inbound.FindingRequesterPort
	videoAnalyzer     inbound.FindingRequesterPort
	synthesizer       inbound.SynthesizerPort
	dialogueWriter    inbound.DialogueWriterPort
	audioAssembler    inbound.AudioAssemblerPort
	metadataGenerator inbound.MetadataGeneratorPort
	workflowConfig    *config.WorkflowConfig
}

func NewPodcastWorkflow(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	researcher inbound.FindingRequesterPort, videoAnalyzer inbound.FindingRequesterPort,
	synthesizer inbound.SynthesizerPort, dialogueWriter inbound.DialogueWriterPort,
	audioAssembler inbound.AudioAssemblerPort, metadataGenerator inbound.MetadataGeneratorPort,
	workflowConfig *config.WorkflowConfig) inbound.PodcastWorkflowPort {
	return &podcastWorkflow{
		logger:            logger,
		workerPool:        workerPool,
		researcher:        researcher,
		videoAnalyzer:     videoAnalyzer,
		synthesizer:       synthesizer,
		dialogueWriter:    dialogueWriter,
		audioAssembler:    audioAssembler,
		metadataGenerator: metadataGenerator,
		workflowConfig:    workflowConfig,
	}
}

func (w *podcastWorkflow) Run(ctx context.Context, params inbound.RunParams) (domain.PodcastBundle, error) {
	run := &runContext{
		id:      params.RunID,
		state:   domain.StateValidating,
		visited: []domain.RunState{domain.StateValidating},
		onStage: params.OnStage,
	}
	run.notify("run started")

	if err := params.Input.Validate(); err != nil {
		return w.fail(run, domain.StateValidating, err)
	}

	findings, err := w.collectFindings(ctx, run, params.Input)
	if err != nil {
		return domain.PodcastBundle{}, err
	}

	if err := run.advance(domain.StateSynthesizing, "merging findings"); err != nil {
		return w.fail(run, run.state, err)
	}
	report, err := w.synthesizeWithTimeout(ctx, params.Input.Topic, findings)
	if err != nil {
		return w.fail(run, domain.StateSynthesizing, err)
	}

	if err := run.advance(domain.StateScriptWriting, "writing dialogue"); err != nil {
		return w.fail(run, run.state, err)
	}
	script, err := w.writeScriptWithTimeout(ctx, params, report)
	if err != nil {
		return w.fail(run, domain.StateScriptWriting, err)
	}

	metadata, err := w.summarizeWithTimeout(ctx, params, report, script)
	if err != nil {
		return w.fail(run, domain.StateScriptWriting, err)
	}

	if err := run.advance(domain.StateRendering, "synthesizing speech"); err != nil {
		return w.fail(run, run.state, err)
	}
	artifact, err := w.audioAssembler.Render(ctx, script)
	if err != nil {
		return w.fail(run, domain.StateRendering, err)
	}

	if err := run.advance(domain.StateDone, "bundle complete"); err != nil {
		return w.fail(run, run.state, err)
	}

	return domain.PodcastBundle{
		RunID:    run.id,
		Report:   report,
		Script:   script,
		Audio:    artifact,
		Metadata: metadata,
	}, nil
}

// collectFindings fans out to every requester the input selects, joins
// their results, and decides whether the run can proceed. NoContent from
// one source is survivable as long as another source produced a Finding.
func (w *podcastWorkflow) collectFindings(ctx context.Context, run *runContext, input domain.RunInput) ([]domain.Finding, error) {
	var requesters []inbound.FindingRequesterPort
	if input.HasTopic() {
		if err := run.advance(domain.StateResearching, "researching topic"); err != nil {
			_, ferr := w.fail(run, run.state, err)
			return nil, ferr
		}
		requesters = append(requesters, w.researcher)
	}
	if input.HasVideo() {
		if err := run.advance(domain.StateAnalyzingVideo, "analyzing video"); err != nil {
			_, ferr := w.fail(run, run.state, err)
			return nil, ferr
		}
		requesters = append(requesters, w.videoAnalyzer)
	}

	channels := make([]<-chan findingResult, 0, len(requesters))
	for _, requester := range requesters {
		requester := requester
		resultCh := make(chan findingResult, 1)
		channels = append(channels, resultCh)
		err := w.workerPool.Submit(func() {
			defer close(resultCh)
			finding, err := w.requestWithRetry(ctx, requester, input)
			resultCh <- findingResult{Kind: requester.Kind(), Finding: finding, Err: err}
		})
		if err != nil {
			_, ferr := w.fail(run, run.state, err)
			return nil, ferr
		}
	}

	merged, err := channel_utils.MergeChannels(w.workerPool, channels...)
	if err != nil {
		_, ferr := w.fail(run, run.state, err)
		return nil, ferr
	}

	findings := make([]domain.Finding, 0, len(requesters))
	failures := make(map[domain.SourceKind]error)
	for result := range merged {
		if result.Err != nil {
			w.logger.WarnWithFields("Requester failed", map[string]interface{}{
				"source": string(result.Kind),
				"error":  result.Err.Error(),
			})
			failures[result.Kind] = result.Err
			continue
		}
		findings = append(findings, result.Finding)
	}

	if len(findings) > 0 {
		return findings, nil
	}

	// Every invoked source failed. A definitive NoContent from all sources
	// means there is nothing to synthesize; a transient failure that
	// outlived its retries is reported against the requester's own stage.
	// Sources are inspected in a fixed order so the terminal error does not
	// depend on map iteration.
	sourceOrder := []domain.SourceKind{domain.ResearchSource, domain.VideoSource}
	for _, kind := range sourceOrder {
		cause, failed := failures[kind]
		if failed && !errors.Is(cause, domain.ErrNoContent) {
			_, ferr := w.fail(run, stageFor(kind), cause)
			return nil, ferr
		}
	}
	if err := run.advance(domain.StateSynthesizing, "merging findings"); err != nil {
		_, ferr := w.fail(run, run.state, err)
		return nil, ferr
	}
	cause := domain.ErrSynthesisEmpty
	for _, kind := range sourceOrder {
		if failure, failed := failures[kind]; failed {
			cause = fmt.Errorf("%w: %v", domain.ErrSynthesisEmpty, failure)
			break
		}
	}
	_, ferr := w.fail(run, domain.StateSynthesizing, cause)
	return nil, ferr
}

// requestWithRetry owns the retry policy: transient upstream failures get a
// bounded number of attempts with linear backoff, NoContent never retries,
// and every attempt runs under the workflow's per-call timeout.
func (w *podcastWorkflow) requestWithRetry(ctx context.Context, requester inbound.FindingRequesterPort,
	input domain.RunInput) (domain.Finding, error) {
	var lastErr error
	for attempt := 0; attempt < w.workflowConfig.RequestRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return domain.Finding{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * w.workflowConfig.RetryBackoff):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, w.workflowConfig.CallTimeout)
		finding, err := requester.Request(callCtx, input)
		cancel()
		if err == nil {
			return finding, nil
		}
		lastErr = err
		if !domain.Transient(err) {
			break
		}
		w.logger.WarnWithFields("Transient requester failure, retrying", map[string]interface{}{
			"source":  string(requester.Kind()),
			"attempt": attempt + 1,
		})
	}
	return domain.Finding{}, lastErr
}

func (w *podcastWorkflow) synthesizeWithTimeout(ctx context.Context, topic string,
	findings []domain.Finding) (domain.SynthesizedReport, error) {
	callCtx, cancel := context.WithTimeout(ctx, w.workflowConfig.CallTimeout)
	defer cancel()
	return w.synthesizer.Synthesize(callCtx, inbound.SynthesizeParams{
		Topic:    topic,
		Findings: findings,
	})
}

func (w *podcastWorkflow) writeScriptWithTimeout(ctx context.Context, params inbound.RunParams,
	report domain.SynthesizedReport) (domain.PodcastScript, error) {
	callCtx, cancel := context.WithTimeout(ctx, w.workflowConfig.CallTimeout)
	defer cancel()
	return w.dialogueWriter.WriteScript(callCtx, inbound.WriteScriptParams{
		Topic:           params.Input.Topic,
		Report:          report,
		DurationMinutes: params.Input.DurationMinutes,
	})
}

func (w *podcastWorkflow) summarizeWithTimeout(ctx context.Context, params inbound.RunParams,
	report domain.SynthesizedReport, script domain.PodcastScript) (domain.EpisodeMetadata, error) {
	callCtx, cancel := context.WithTimeout(ctx, w.workflowConfig.CallTimeout)
	defer cancel()
	return w.metadataGenerator.Summarize(callCtx, inbound.SummarizeParams{
		Topic:           params.Input.Topic,
		Report:          report,
		Script:          script,
		DurationMinutes: params.Input.DurationMinutes,
	})
}

func (w *podcastWorkflow) fail(run *runContext, stage domain.RunState, err error) (domain.PodcastBundle, error) {
	stageErr := domain.NewStageError(stage, err)
	w.logger.ErrorWithFields(stageErr, "Run failed", map[string]interface{}{
		"run_id": run.id,
		"stage":  string(stage),
	})
	run.state = domain.StateFailed
	run.visited = append(run.visited, domain.StateFailed)
	run.notify(stageErr.Error())
	return domain.PodcastBundle{}, stageErr
}

func (r *runContext) advance(to domain.RunState, message string) error {
	if !r.state.CanTransition(to) {
		return fmt.Errorf("illegal transition %s -> %s", r.state, to)
	}
	r.state = to
	r.visited = append(r.visited, to)
	r.notify(message)
	return nil
}

func (r *runContext) notify(message string) {
	if r.onStage == nil {
		return
	}
	r.onStage(domain.StageEvent{
		RunID:   r.id,
		State:   r.state,
		Message: message,
	})
}

func stageFor(kind domain.SourceKind) domain.RunState {
	if kind == domain.VideoSource {
		return domain.StateAnalyzingVideo
	}
	return domain.StateResearching
}
