package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the S3 client the archive uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive writes objects under a key prefix in one bucket.
type Archive struct {
	client S3API
	bucket string
	prefix string
}

func NewArchive(client S3API, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Put uploads body under name and returns the full object key.
func (a *Archive) Put(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	key := a.Key(name)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return key, nil
}

func (a *Archive) Key(name string) string {
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}

// URL returns the s3:// location of an object.
func (a *Archive) URL(key string) string {
	return fmt.Sprintf("s3://%s/%s", a.bucket, key)
}
