package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
)

type episodeRequest struct {
	EpisodeID       string   `json:"episode_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Topics          []string `json:"topics"`
	DurationSeconds float64  `json:"duration_seconds"`
	AudioURL        string   `json:"audio_url"`
}

// episodePublisher announces a finished episode to the catalog gateway so
// it shows up in listener feeds.
type episodePublisher struct {
	logger        outbound.LoggerPort
	gatewayConfig *config.GatewayConfig
	authorizer    Authorizer
}

func NewEpisodePublisher(gatewayConfig *config.GatewayConfig, authorizer Authorizer,
	logger outbound.LoggerPort) outbound.EpisodePublisherPort {
	return &episodePublisher{
		logger:        logger,
		gatewayConfig: gatewayConfig,
		authorizer:    authorizer,
	}
}

func (p *episodePublisher) Publish(ctx context.Context, record outbound.EpisodeRecord) error {
	token, err := p.authorizer.Authorize(ctx)
	if err != nil {
		p.logger.Error(err, "Failed to authorize against the gateway")
		return err
	}

	payload, err := json.Marshal(episodeRequest{
		EpisodeID:       record.EpisodeID,
		Title:           record.Title,
		Description:     record.Description,
		Topics:          record.Topics,
		DurationSeconds: record.DurationSeconds,
		AudioURL:        record.AudioURL,
	})
	if err != nil {
		p.logger.Error(err, "Failed to marshal episode request")
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.gatewayConfig.ApiUrl, bytes.NewReader(payload))
	if err != nil {
		p.logger.Error(err, "Failed to create episode request")
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		p.logger.Error(err, "Failed to send episode request")
		return err
	}

	defer func(closer io.ReadCloser) {
		err := closer.Close()
		if err != nil {
			p.logger.Error(err, "Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("gateway returned unexpected status code %d", resp.StatusCode)
	}

	return nil
}
