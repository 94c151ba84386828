package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	cfg "github.com/maheshrc27/postdeck/configs"
)

// ErrObjectExists is returned by Upload when the bucket already holds an
// object under the requested key. The bucket is append-only, so a clash is
// a caller bug or a filename collision, never something to clobber.
var ErrObjectExists = errors.New("object already exists")

// Storage is the object-store contract used by the ingest and post services.
type Storage interface {
	Upload(ctx context.Context, key string, file []byte, filetype string) error
	PublicURL(key string) string
	Delete(ctx context.Context, key string) error
}

type R2Service struct {
	config cfg.Config
}

func NewR2Service(cfg cfg.Config) *R2Service {
	return &R2Service{config: cfg}
}

func (r *R2Service) client() *s3.Client {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(r.config.R2.AccessKey, r.config.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		log.Fatal(err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r.config.R2.AccountID))
	})
}

// Upload stores file under key. IfNoneMatch makes the write conditional so an
// existing object is never replaced; that case surfaces as ErrObjectExists.
func (r *R2Service) Upload(ctx context.Context, key string, file []byte, filetype string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(filetype),
		IfNoneMatch: aws.String("*"),
	}

	_, err := r.client().PutObject(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return ErrObjectExists
		}
		slog.Info(err.Error())
		return err
	}

	return nil
}

// PublicURL derives the public locator for key. No network call.
func (r *R2Service) PublicURL(key string) string {
	return strings.TrimSuffix(r.config.R2.PublicBaseURL, "/") + "/" + key
}

func (r *R2Service) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.R2.BucketName),
		Key:    aws.String(key),
	}

	_, err := r.client().DeleteObject(ctx, input)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
