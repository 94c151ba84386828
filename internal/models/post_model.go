package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Post struct {
	ID               string     `db:"id" json:"id"`
	ImageURL         string     `db:"image_url" json:"image_url"`
	Content          string     `db:"content" json:"content"`
	Status           string     `db:"status" json:"status"` // pending, posted, failed, draft
	FacebookPostID   string     `db:"facebook_post_id" json:"facebook_post_id,omitempty"`
	OriginalFilename string     `db:"original_filename" json:"original_filename,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	PostedAt         *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	Metadata         Metadata   `db:"metadata" json:"metadata,omitempty"`
}

const (
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
	PostStatusDraft   = "draft"
)

// ValidStatus reports whether s is one of the known post statuses.
func ValidStatus(s string) bool {
	switch s {
	case PostStatusPending, PostStatusPosted, PostStatusFailed, PostStatusDraft:
		return true
	}
	return false
}

// Metadata is the open-ended diagnostic mapping stored in the jsonb column.
// Updates replace the column wholesale, so callers merge onto the prior value
// with Merge before writing.
type Metadata map[string]any

// Merge returns a copy of m with the entries of extra applied on top.
// The receiver is never modified.
func (m Metadata) Merge(extra Metadata) Metadata {
	merged := make(Metadata, len(m)+len(extra))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("metadata: unsupported scan source")
	}
	return json.Unmarshal(data, m)
}
