package repositories

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/loftchat/loft-server/internal/account"
	"github.com/loftchat/loft-server/internal/config"
)

// AvatarStore is the blob store adapter for avatar images. It talks to the
// hosted storage's S3-compatible endpoint; uploaded objects are publicly
// readable under PublicBaseURL.
type AvatarStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewAvatarStore initializes the S3 client using static credentials and the
// configured custom endpoint.
func NewAvatarStore(cfg config.StorageConfig) *AvatarStore {
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	log.Println("Successfully initialized avatar storage client")

	return &AvatarStore{
		client:        client,
		bucket:        cfg.AvatarBucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Upload stores the object under the given name.
func (s *AvatarStore) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return &account.StoreError{Op: "upload avatar", Err: err}
	}
	return nil
}

// Delete removes the object. Used to compensate an upload whose row update
// failed.
func (s *AvatarStore) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		return &account.StoreError{Op: "delete avatar", Err: err}
	}
	return nil
}

// PublicURL joins the public avatar namespace with the object name.
func (s *AvatarStore) PublicURL(name string) string {
	return s.publicBaseURL + "/" + name
}
