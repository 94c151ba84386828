package service

import (
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/maheshrc27/postdeck/internal/models"
	"github.com/maheshrc27/postdeck/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegDataURI(t *testing.T) string {
	t.Helper()
	// Minimal JPEG header, enough for content sniffing.
	raw := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestIngest_CreatesPendingPost(t *testing.T) {
	repo := newFakePostRepository()
	storage := newFakeStorage()
	svc := NewIngestService(repo, storage)

	result, err := svc.Ingest(context.Background(), &transfer.WebhookPayload{
		DataImage: jpegDataURI(t),
		Output:    "caption A",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Regexp(t, regexp.MustCompile(`^post-[0-9T-]+Z\.jpg$`), result.Filename)
	assert.Equal(t, "https://cdn.example.com/"+result.Filename, result.ImageURL)

	post, err := repo.GetByID(context.Background(), result.PostID)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, models.PostStatusPending, post.Status)
	assert.Equal(t, "caption A", post.Content)
	assert.Equal(t, result.ImageURL, post.ImageURL)
	assert.Equal(t, result.Filename, post.OriginalFilename)
	assert.Equal(t, result.Filename, post.Metadata["filename"])
	assert.Equal(t, DefaultWorkflowID, post.Metadata["workflow_id"])
	assert.NotEmpty(t, post.Metadata["original_timestamp"])

	_, uploaded := storage.objects[result.Filename]
	assert.True(t, uploaded)
}

func TestIngest_KeepsSuppliedMetadata(t *testing.T) {
	repo := newFakePostRepository()
	svc := NewIngestService(repo, newFakeStorage())

	result, err := svc.Ingest(context.Background(), &transfer.WebhookPayload{
		DataImage:  jpegDataURI(t),
		Output:     "caption B",
		Timestamp:  "2025-08-30T10:00:00Z",
		WorkflowID: "wf-42",
	})
	require.NoError(t, err)

	post, _ := repo.GetByID(context.Background(), result.PostID)
	assert.Equal(t, "2025-08-30T10:00:00Z", post.Metadata["original_timestamp"])
	assert.Equal(t, "wf-42", post.Metadata["workflow_id"])
}

func TestIngest_MissingFields(t *testing.T) {
	svc := NewIngestService(newFakePostRepository(), newFakeStorage())

	tests := []struct {
		name    string
		payload transfer.WebhookPayload
	}{
		{"missing image", transfer.WebhookPayload{Output: "caption"}},
		{"missing caption", transfer.WebhookPayload{DataImage: jpegDataURI(t)}},
		{"empty payload", transfer.WebhookPayload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Ingest(context.Background(), &tt.payload)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestIngest_RejectsInvalidBase64(t *testing.T) {
	svc := NewIngestService(newFakePostRepository(), newFakeStorage())

	_, err := svc.Ingest(context.Background(), &transfer.WebhookPayload{
		DataImage: "data:image/jpeg;base64,not-valid-base64!!",
		Output:    "caption",
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestIngest_RejectsNonImageBytes(t *testing.T) {
	svc := NewIngestService(newFakePostRepository(), newFakeStorage())

	_, err := svc.Ingest(context.Background(), &transfer.WebhookPayload{
		DataImage: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("plain text")),
		Output:    "caption",
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestIngest_UploadFaultLeavesNoRow(t *testing.T) {
	repo := newFakePostRepository()
	storage := newFakeStorage()
	storage.uploadErr = errors.New("bucket unavailable")
	svc := NewIngestService(repo, storage)

	_, err := svc.Ingest(context.Background(), &transfer.WebhookPayload{
		DataImage: jpegDataURI(t),
		Output:    "caption",
	})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)

	posts, _ := repo.List(context.Background(), "")
	assert.Empty(t, posts, "no post row may exist after a failed upload")
}

func TestIngest_FilenameCollisionIsDistinguishable(t *testing.T) {
	repo := newFakePostRepository()
	storage := newFakeStorage()
	storage.uploadErr = ErrObjectExists
	svc := NewIngestService(repo, storage)

	_, err := svc.Ingest(context.Background(), &transfer.WebhookPayload{
		DataImage: jpegDataURI(t),
		Output:    "caption",
	})
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, upstream.Msg, "already exists")
}

func TestImageFilename(t *testing.T) {
	ts := time.Date(2025, 8, 31, 12, 34, 56, 789000000, time.UTC)
	assert.Equal(t, "post-2025-08-31T12-34-56-789Z.jpg", imageFilename(ts))
}
