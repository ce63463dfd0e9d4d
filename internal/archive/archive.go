// Package archive stores raw webhook payloads in S3-compatible object storage
// so that disputed purchases can be replayed against the original payload.
package archive

import (
	stdbytes "bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/moalemy/salla-webhook/pkg/log"
)

// Archiver stores a raw payload under the given key.
type Archiver interface {
	Store(ctx context.Context, key string, payload []byte) error
}

type cloudArchiver struct {
	awsClient *s3.Client
	bucket    string
	logger    log.Logger
}

// NewCloudArchiver creates an archiver writing to the given bucket.
func NewCloudArchiver(awsClient *s3.Client, bucket string, logger log.Logger) Archiver {
	return cloudArchiver{awsClient, bucket, logger}
}

// Store implements Archiver.
func (a cloudArchiver) Store(ctx context.Context, key string, payload []byte) error {
	objectKey := fmt.Sprintf("webhooks/%s/%s.json", time.Now().UTC().Format("2006-01-02"), key)

	_, err := a.awsClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        stdbytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("uploading payload to %s:%s: %w", a.bucket, objectKey, err)
	}
	return nil
}

type noopArchiver struct{}

// NewNoop creates an archiver that discards payloads. It is used when no
// archive bucket is configured.
func NewNoop() Archiver {
	return noopArchiver{}
}

// Store implements Archiver.
func (noopArchiver) Store(context.Context, string, []byte) error {
	return nil
}
