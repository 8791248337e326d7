package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type s3EpisodeStore struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3EpisodeStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.EpisodeStorePort {
	return &s3EpisodeStore{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3EpisodeStore) Save(ctx context.Context, episodeID string, artifact domain.AudioArtifact) (string, error) {
	itemPath := fmt.Sprintf("episodes/%s/audio.wav", episodeID)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(itemPath),
		Body:          bytes.NewReader(artifact.WAV),
		ContentType:   aws.String("audio/wav"),
		ContentLength: aws.Int64(int64(len(artifact.WAV))),
	}

	_, err := s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload episode audio to S3", map[string]interface{}{
			"bucket":     s.s3Config.BucketName,
			"episode_id": episodeID,
		})
		return "", err
	}

	s3Url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, itemPath)
	s.logger.DebugWithFields("Episode audio uploaded", map[string]interface{}{
		"s3_url": s3Url,
		"bytes":  len(artifact.WAV),
	})

	return s3Url, nil
}
