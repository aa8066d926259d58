package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vibequest/vibequest/vibequest/database/models"
)

// ArchiveService exports economy snapshots to a Spaces bucket so history
// survives beyond the controller's in-memory window.
type ArchiveService struct {
	client *s3.Client
	bucket string
	region string
	root   string
}

func NewArchiveService(spacesKey, spacesSecret, region, bucket, root string) (*ArchiveService, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &ArchiveService{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
		root:   strings.Trim(root, "/"),
	}, nil
}

// ArchiveSnapshots writes the given snapshots as one JSON document keyed by
// the day they cover.
func (a *ArchiveService) ArchiveSnapshots(ctx context.Context, day time.Time, snapshots []*models.EconomySnapshot) (string, error) {
	if len(snapshots) == 0 {
		return "", fmt.Errorf("no snapshots to archive")
	}

	body, err := json.Marshal(snapshots)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshots: %w", err)
	}

	key := fmt.Sprintf("%s/economy/%s.json", a.root, day.Format("2006-01-02"))
	contentType := "application/json"

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload archive %s: %w", key, err)
	}

	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", a.bucket, a.region, key), nil
}
