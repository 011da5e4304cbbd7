package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	appconfig "cricket-registration-backend/internal/config"
	apperrors "cricket-registration-backend/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ObjectPutter is the part of the S3 client the mirror needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PhotoMirror copies profile photos to an S3-compatible bucket served from a
// public base URL. The database keeps the authoritative copy.
type PhotoMirror struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
}

// NewPhotoMirror creates a mirror on top of an existing client
func NewPhotoMirror(client ObjectPutter, bucket, publicBaseURL string) (*PhotoMirror, error) {
	if bucket == "" {
		return nil, apperrors.ErrStorageNotConfigured
	}
	if _, err := url.Parse(publicBaseURL); err != nil || publicBaseURL == "" {
		return nil, fmt.Errorf("invalid STORAGE_PUBLIC_BASE_URL %q", publicBaseURL)
	}
	return &PhotoMirror{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
	}, nil
}

// NewS3PhotoMirror builds an S3 client from the storage configuration. A
// custom endpoint selects Cloudflare R2 or MinIO instead of AWS.
func NewS3PhotoMirror(ctx context.Context, cfg *appconfig.Config) (*PhotoMirror, error) {
	region := cfg.StorageRegion
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.StorageAccessKeyID, cfg.StorageSecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.StorageEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
			o.UsePathStyle = true
		}
	})
	return NewPhotoMirror(client, cfg.StorageBucket, cfg.StoragePublicBaseURL)
}

// UploadPhoto stores the photo under a readable key and returns its public URL
func (m *PhotoMirror) UploadPhoto(ctx context.Context, accountID uuid.UUID, ownerName string, data []byte, contentType string) (string, error) {
	key := PhotoKey(accountID, ownerName, contentType)

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(m.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo (key: %s): %w", key, err)
	}

	return url.JoinPath(m.publicBaseURL, key)
}

// PhotoKey names the object for an account photo, e.g. photos/rohit-sharma-<id>.jpg
func PhotoKey(accountID uuid.UUID, ownerName, contentType string) string {
	name := accountID.String()
	if s := slug.Make(ownerName); s != "" {
		name = s + "-" + name
	}
	return "photos/" + name + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
