package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/Lumos-Labs-HQ/airseed/internal/config"
)

// ObjectPutter is the slice of the S3 client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher copies committed output files to s3://bucket/prefix/.
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

func NewPublisher(client ObjectPutter, bucket, prefix string) *Publisher {
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Publisher builds a client from cfg. Static keys win over the default
// credential chain; a custom endpoint switches to path-style addressing.
func NewS3Publisher(ctx context.Context, cfg config.S3) (*Publisher, error) {
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewPublisher(client, cfg.Bucket, cfg.Prefix), nil
}

// Publish uploads files in order and returns their s3:// URLs. It stops at
// the first failure; local files are left untouched either way.
func (p *Publisher) Publish(ctx context.Context, files []string) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return urls, fmt.Errorf("failed to read %s: %w", file, err)
		}

		key := path.Join(p.prefix, filepath.Base(file))
		body := bytes.NewReader(data)

		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(p.bucket),
			Key:           aws.String(key),
			Body:          body,
			ContentType:   aws.String(contentType(file)),
			ContentLength: aws.Int64(body.Size()),
		})
		if err != nil {
			return urls, fmt.Errorf("failed to upload %s to S3: %w", key, err)
		}

		log.Debug().Str("bucket", p.bucket).Str("key", key).Int("bytes", len(data)).Msg("Uploaded file.")
		urls = append(urls, fmt.Sprintf("s3://%s/%s", p.bucket, key))
	}
	return urls, nil
}

func contentType(file string) string {
	switch filepath.Ext(file) {
	case ".csv":
		return "text/csv"
	case ".sql":
		return "application/sql"
	case ".json":
		return "application/json"
	case ".yaml":
		return "application/yaml"
	case ".db":
		return "application/vnd.sqlite3"
	default:
		return "application/octet-stream"
	}
}
