package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pgEdge/pgedge-salesreport/internal/logging"
)

// PutObjectAPI is the part of the S3 client used for publishing.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

var contentTypes = map[string]string{
	".csv":  "text/csv",
	".json": "application/json",
	".yaml": "application/yaml",
	".pdf":  "application/pdf",
}

// ObjectKey joins prefix and the base name of file.
func ObjectKey(prefix, file string) string {
	return path.Join(prefix, filepath.Base(file))
}

// Upload puts the exported file into bucket under prefix and returns the
// object key.
func Upload(ctx context.Context, api PutObjectAPI, bucket, prefix, file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := ObjectKey(prefix, file)
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct, ok := contentTypes[filepath.Ext(file)]; ok {
		input.ContentType = aws.String(ct)
	}

	if _, err := api.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s to s3://%s/%s: %w", file, bucket, key, err)
	}

	logging.Info().
		Str("bucket", bucket).
		Str("key", key).
		Msg("Report uploaded")
	return key, nil
}
