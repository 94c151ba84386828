package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/maheshrc27/postdeck/internal/models"
	"github.com/maheshrc27/postdeck/internal/repository"
	"github.com/maheshrc27/postdeck/internal/transfer"
)

// DefaultWorkflowID is recorded when the workflow omits its identifier.
const DefaultWorkflowID = "n8n-webhook"

var dataURIPrefix = regexp.MustCompile(`^data:image/[a-z]+;base64,`)

type IngestService interface {
	Ingest(ctx context.Context, payload *transfer.WebhookPayload) (*transfer.IngestResult, error)
}

type ingestService struct {
	pr      repository.PostRepository
	storage Storage
}

func NewIngestService(pr repository.PostRepository, storage Storage) IngestService {
	return &ingestService{pr: pr, storage: storage}
}

// Ingest decodes the workflow payload, stores the image and creates the
// pending post. The upload happens before the insert, so a storage fault
// leaves no row behind; the workflow re-sends on failure.
func (s *ingestService) Ingest(ctx context.Context, payload *transfer.WebhookPayload) (*transfer.IngestResult, error) {
	if payload.DataImage == "" || payload.Output == "" {
		err := &ValidationError{Msg: "Missing required fields: dataimage or output"}
		slog.Info(err.Error())
		return nil, err
	}

	base64Data := dataURIPrefix.ReplaceAllString(payload.DataImage, "")
	imageBytes, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		slog.Info(err.Error())
		return nil, &ValidationError{Msg: "dataimage is not valid base64"}
	}

	if !filetype.IsImage(imageBytes) {
		err := &ValidationError{Msg: "dataimage does not decode to an image"}
		slog.Info(err.Error())
		return nil, err
	}

	filename := imageFilename(time.Now().UTC())

	if err := s.storage.Upload(ctx, filename, imageBytes, "image/jpeg"); err != nil {
		slog.Error(err.Error())
		if errors.Is(err, ErrObjectExists) {
			return nil, &UpstreamError{Op: "storage upload", Msg: fmt.Sprintf("object %s already exists", filename)}
		}
		return nil, &UpstreamError{Op: "storage upload", Msg: "failed to upload image to storage"}
	}

	publicURL := s.storage.PublicURL(filename)

	originalTimestamp := payload.Timestamp
	if originalTimestamp == "" {
		originalTimestamp = time.Now().UTC().Format(time.RFC3339)
	}
	workflowID := payload.WorkflowID
	if workflowID == "" {
		workflowID = DefaultWorkflowID
	}

	post := models.Post{
		ImageURL:         publicURL,
		Content:          payload.Output,
		Status:           models.PostStatusPending,
		OriginalFilename: filename,
		Metadata: models.Metadata{
			"original_timestamp": originalTimestamp,
			"filename":           filename,
			"workflow_id":        workflowID,
			"upload_path":        filename,
		},
	}

	postID, err := s.pr.Create(ctx, &post)
	if err != nil {
		return nil, &UpstreamError{Op: "database insert", Msg: "failed to save post"}
	}

	return &transfer.IngestResult{
		PostID:   postID,
		ImageURL: publicURL,
		Filename: filename,
	}, nil
}

// imageFilename derives the storage key from the ingest time. Millisecond
// precision keeps keys practically unique; the upload's no-overwrite guard
// catches the rest.
func imageFilename(t time.Time) string {
	ts := t.Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return fmt.Sprintf("post-%s.jpg", ts)
}
