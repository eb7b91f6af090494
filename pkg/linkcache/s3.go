package linkcache

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Signer issues presigned GetObject URLs.
type S3Signer struct {
	presign *s3.PresignClient
}

func NewS3Signer(client *s3.Client) *S3Signer {
	return &S3Signer{presign: s3.NewPresignClient(client)}
}

func (s *S3Signer) Sign(ctx context.Context, bucket, key string, validity time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
