package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/gestobra/gestobra-api/internal/config"
)

// S3Store uploads files into a bucket, keyed folder/category/uuid-filename.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

var _ Uploader = (*S3Store)(nil)

// NewS3 creates an S3 adapter. Static credentials from configuration take
// precedence; otherwise the default AWS credential chain applies.
func NewS3(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}, nil
}

func (s *S3Store) Name() string { return "s3" }

// Upload puts the object and returns its key as the stable file id. The key
// is prefixed with a uuid so identical filenames never collide; each upload
// is an independent event.
func (s *S3Store) Upload(ctx context.Context, in UploadInput) (UploadResult, error) {
	if in.Folder == "" {
		return UploadResult{}, fmt.Errorf("destination folder is required")
	}

	key := path.Join(in.Folder, in.Category, uuid.NewString()+"-"+in.Filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(in.Data),
		ContentType: aws.String(in.MimeType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("s3 upload: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return UploadResult{FileID: key, URL: url}, nil
}
