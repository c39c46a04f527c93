// server/internal/s3/uploader.go
package s3

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"community-health-api-server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Uploader struct {
	Client           *s3.Client
	Bucket           string
	Region           string
	CloudFrontDomain string
}

func NewUploader(cfg config.S3Config) (*Uploader, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Uploader{
		Client:           s3.NewFromConfig(sdkConfig),
		Bucket:           cfg.Bucket,
		Region:           cfg.Region,
		CloudFrontDomain: cfg.CloudFrontDomain,
	}, nil
}

// UploadDataURI decodes a data-URI payload (data:<mime>;base64,<data>) and
// stores it under the given logical folder. It returns the durable retrieval
// URL and the object key; the key is what a compensating DeleteFile needs
// when a later step of the request fails.
func (u *Uploader) UploadDataURI(ctx context.Context, dataURI, folder string) (url, objectKey string, err error) {
	mimeType, payload, err := ParseDataURI(dataURI)
	if err != nil {
		return "", "", err
	}

	objectKey = fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), extensionForMIME(mimeType))

	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return u.ObjectURL(objectKey), objectKey, nil
}

// DeleteFile removes an uploaded object. Used as the compensating action when
// a persistence step fails after the upload succeeded.
func (u *Uploader) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := u.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// ObjectURL builds the public URL for an object key, preferring the
// CloudFront domain when one is configured.
func (u *Uploader) ObjectURL(objectKey string) string {
	if u.CloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", u.CloudFrontDomain, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, objectKey)
}

// ParseDataURI splits a data:<mime>;base64,<data> payload into its MIME type
// and decoded bytes.
func ParseDataURI(dataURI string) (mimeType string, payload []byte, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, errors.New("payload is not a data URI")
	}

	meta, data, found := strings.Cut(strings.TrimPrefix(dataURI, "data:"), ",")
	if !found {
		return "", nil, errors.New("malformed data URI")
	}

	mimeType = strings.TrimSuffix(meta, ";base64")
	if mimeType == meta {
		return "", nil, errors.New("data URI must be base64 encoded")
	}
	if mimeType == "" {
		return "", nil, errors.New("data URI is missing a MIME type")
	}

	payload, err = base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}

	return mimeType, payload, nil
}

func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	}
	return ""
}
