package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Media assets (post covers, project galleries, team photos) live in a
// Cloudflare R2 bucket behind the S3 API. Config is read per call, like the
// other external clients in this package.
func mediaBucket(ctx context.Context) (*s3.Client, string, error) {
	accountID := os.Getenv("R2_ACCOUNT_ID")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || accessKey == "" || secretKey == "" || bucket == "" {
		return nil, "", fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME must be set")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"), // required by the SDK, ignored by R2
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, "", fmt.Errorf("load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return client, bucket, nil
}

// StoreMediaObject writes an object into the media bucket. The content type is
// inferred from the object name extension.
func StoreMediaObject(ctx context.Context, objectName string, body io.Reader) error {
	client, bucket, err := mediaBucket(ctx)
	if err != nil {
		return err
	}

	contentType := mime.TypeByExtension(path.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(objectName),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("store media object %s: %w", objectName, err)
	}
	return nil
}

// PresignMediaURL returns a time-limited GET URL for a stored object.
func PresignMediaURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	client, bucket, err := mediaBucket(ctx)
	if err != nil {
		return "", err
	}

	presigner := s3.NewPresignClient(client)
	out, err := presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(objectName)},
		func(po *s3.PresignOptions) { po.Expires = expiry },
	)
	if err != nil {
		return "", fmt.Errorf("presign media url for %s: %w", objectName, err)
	}
	return out.URL, nil
}

// StoreMediaAndPresign uploads and immediately returns a presigned URL so the
// caller can hand the asset straight back to the admin UI.
func StoreMediaAndPresign(ctx context.Context, objectName string, body io.Reader, expiry time.Duration) (string, error) {
	if err := StoreMediaObject(ctx, objectName, body); err != nil {
		return "", err
	}
	return PresignMediaURL(ctx, objectName, expiry)
}

// RemoveMediaObject deletes an object from the media bucket.
func RemoveMediaObject(ctx context.Context, objectName string) error {
	client, bucket, err := mediaBucket(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return fmt.Errorf("remove media object %s: %w", objectName, err)
	}
	return nil
}
