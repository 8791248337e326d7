package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
)

type dynamoEpisodeItem struct {
	EpisodeID       string  `dynamodbav:"episode_id"`
	Title           string  `dynamodbav:"title"`
	Description     string  `dynamodbav:"description"`
	Topics          string  `dynamodbav:"topics"`
	DurationSeconds float64 `dynamodbav:"duration_seconds"`
	AudioURL        string  `dynamodbav:"audio_url"`
	TTL             int64   `dynamodbav:"ttl"`
}

type dynamoEpisodeCache struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoEpisodeCache(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.EpisodeCachePort {
	return &dynamoEpisodeCache{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (c *dynamoEpisodeCache) Save(ctx context.Context, record outbound.EpisodeRecord) error {
	item := dynamoEpisodeItem{
		EpisodeID:       record.EpisodeID,
		Title:           record.Title,
		Description:     record.Description,
		Topics:          strings.Join(record.Topics, ","),
		DurationSeconds: record.DurationSeconds,
		AudioURL:        record.AudioURL,
		TTL:             time.Now().Add(time.Duration(c.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to marshal episode item", map[string]interface{}{
			"episode_id": record.EpisodeID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(c.dynamoConfig.TableName),
	}

	_, err = c.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		c.logger.ErrorWithFields(err, "Failed to save episode item", map[string]interface{}{
			"episode_id": record.EpisodeID,
		})
		return err
	}

	return nil
}
