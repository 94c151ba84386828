package transfer

import (
	"time"

	"github.com/maheshrc27/postdeck/internal/models"
)

// WebhookPayload is the body posted by the n8n workflow.
type WebhookPayload struct {
	DataImage  string `json:"dataimage"`
	Output     string `json:"output"`
	Timestamp  string `json:"timestamp,omitempty"`
	WorkflowID string `json:"workflow_id,omitempty"`
}

// IngestResult is returned to the workflow after a successful ingest.
type IngestResult struct {
	PostID   string `json:"post_id"`
	ImageURL string `json:"image_url"`
	Filename string `json:"filename"`
}

// PostUpdate carries a partial update; nil fields are left untouched.
// Metadata, when set, replaces the stored column — callers merge first.
type PostUpdate struct {
	Status         *string
	FacebookPostID *string
	PostedAt       *time.Time
	Metadata       models.Metadata
}
