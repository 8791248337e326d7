package controllers

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
	"github.com/PritamPatil2603/podcast-creator-ai/infrastructure/gin_interface/dto"
	"github.com/PritamPatil2603/podcast-creator-ai/middleware"
)

type PodcastController interface {
	CreatePodcast(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type runOutcome struct {
	bundle domain.PodcastBundle
	err    error
}

type podcastController struct {
	logger        outbound.LoggerPort
	workerPool    outbound.TaskDispatcher
	workflow      inbound.PodcastWorkflowPort
	episodeStore  outbound.EpisodeStorePort
	episodeCache  outbound.EpisodeCachePort
	publisher     outbound.EpisodePublisherPort
	podcastConfig *config.PodcastConfig
}

func NewPodcastController(logger outbound.LoggerPort, workerPool outbound.TaskDispatcher,
	workflow inbound.PodcastWorkflowPort, episodeStore outbound.EpisodeStorePort,
	episodeCache outbound.EpisodeCachePort, publisher outbound.EpisodePublisherPort,
	podcastConfig *config.PodcastConfig) PodcastController {
	return &podcastController{
		logger:        logger,
		workerPool:    workerPool,
		workflow:      workflow,
		episodeStore:  episodeStore,
		episodeCache:  episodeCache,
		publisher:     publisher,
		podcastConfig: podcastConfig,
	}
}

func (p *podcastController) CreatePodcast(c *gin.Context) {
	var request dto.CreatePodcastRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
		return
	}

	input := domain.RunInput{
		Topic:           request.Topic,
		VideoURL:        request.VideoURL,
		DurationMinutes: request.DurationMinutes,
	}
	if input.DurationMinutes == 0 {
		input.DurationMinutes = p.podcastConfig.DefaultDurationMinutes
	}
	if err := input.Validate(); err != nil {
		c.AbortWithStatusJSON(400, gin.H{"error": err.Error()})
		return
	}

	newCtx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	runID := uuid.NewString()
	events := make(chan domain.StageEvent, 32)
	outcomeCh := make(chan runOutcome, 1)

	err := p.workerPool.Submit(func() {
		defer close(events)
		bundle, err := p.workflow.Run(newCtx, inbound.RunParams{
			RunID: runID,
			Input: input,
			OnStage: func(event domain.StageEvent) {
				select {
				case events <- event:
				default:
					// A slow client must not stall the run.
				}
			},
		})
		outcomeCh <- runOutcome{bundle: bundle, err: err}
	})
	if err != nil {
		c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
		return
	}

	for event := range events {
		p.writeEvent(c, "stage", event)
	}

	outcome := <-outcomeCh
	if outcome.err != nil {
		p.writeEvent(c, "error", p.toError(outcome.err))
		return
	}

	result, err := p.storeAndPublish(newCtx, outcome.bundle)
	if err != nil {
		p.writeEvent(c, "error", dto.PodcastError{Stage: "publishing", Message: err.Error()})
		return
	}
	p.writeEvent(c, "result", result)
}

// storeAndPublish persists the finished bundle: audio to the object store,
// metadata to the episode cache and the catalog gateway.
func (p *podcastController) storeAndPublish(ctx context.Context, bundle domain.PodcastBundle) (dto.PodcastResult, error) {
	audioURL, err := p.episodeStore.Save(ctx, bundle.RunID, bundle.Audio)
	if err != nil {
		return dto.PodcastResult{}, err
	}

	record := outbound.EpisodeRecord{
		EpisodeID:       bundle.RunID,
		Title:           bundle.Metadata.Title,
		Description:     bundle.Metadata.Description,
		Topics:          bundle.Metadata.Topics,
		DurationSeconds: bundle.Metadata.DurationEstimateSeconds,
		AudioURL:        audioURL,
	}
	if err := p.episodeCache.Save(ctx, record); err != nil {
		return dto.PodcastResult{}, err
	}
	if err := p.publisher.Publish(ctx, record); err != nil {
		return dto.PodcastResult{}, err
	}

	return dto.PodcastResult{
		EpisodeID:               bundle.RunID,
		Title:                   bundle.Metadata.Title,
		Description:             bundle.Metadata.Description,
		Topics:                  bundle.Metadata.Topics,
		DurationEstimateSeconds: bundle.Metadata.DurationEstimateSeconds,
		AudioURL:                audioURL,
		Report:                  bundle.Report.Body,
	}, nil
}

func (p *podcastController) toError(err error) dto.PodcastError {
	var stageErr *domain.StageError
	if errors.As(err, &stageErr) {
		return dto.PodcastError{Stage: string(stageErr.Stage), Message: stageErr.Err.Error()}
	}
	return dto.PodcastError{Stage: "unknown", Message: err.Error()}
}

func (p *podcastController) writeEvent(c *gin.Context, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error(err, "failed to marshal SSE payload")
		return
	}
	if _, err := c.Writer.WriteString("event: " + event + "\ndata: " + string(data) + "\n\n"); err != nil {
		p.logger.Error(err, "failed to write SSE event")
		return
	}
	c.Writer.Flush()
}

func (p *podcastController) RegisterRoutes(g *gin.Engine) {
	g.POST("/podcasts", middleware.SSEHeaders(), p.CreatePodcast)
	g.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
