package accounts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrijs2005/studymate/internal/server/models"
)

// ObjectAPI is the subset of *s3.Client used by S3Repository.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository stores the table as a single JSON object in an S3-compatible
// bucket. The object is replaced on every save.
type S3Repository struct {
	client ObjectAPI
	bucket string
	key    string
}

func NewS3Repository(client ObjectAPI, bucket, key string) *S3Repository {
	return &S3Repository{client: client, bucket: bucket, key: key}
}

func (r *S3Repository) Load(ctx context.Context) (models.Table, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return models.Table{}, nil
		}
		return models.Table{}, fmt.Errorf("s3 error: %w", err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return models.Table{}, fmt.Errorf("s3 error: %w", err)
	}

	t, err := decodeTable(b)
	if err != nil {
		return models.Table{}, fmt.Errorf("s3 error: %s/%s: %w", r.bucket, r.key, err)
	}
	return t, nil
}

func (r *S3Repository) Save(ctx context.Context, t models.Table) error {
	b, err := encodeTable(t)
	if err != nil {
		return err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 error: %w", err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
