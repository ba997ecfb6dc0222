package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"transport-backend/internal/config"
)

// Archiver keeps a copy of every exported PDF in S3-compatible object
// storage. Archiving is best effort: the user already has the file, so an
// upload failure is logged and never fails the export.
type Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewArchiver(cfg config.ArchiveConfig) (*Archiver, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("archive credentials and bucket are required")
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("building archive client config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &Archiver{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Store uploads one exported PDF under <prefix>/<filename>.
func (a *Archiver) Store(ctx context.Context, filename string, pdf []byte) error {
	key := filename
	if a.prefix != "" {
		key = path.Join(a.prefix, filename)
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	log.Printf("[Archive] stored %s (%d bytes)", key, len(pdf))
	return nil
}
