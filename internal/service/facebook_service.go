package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	cfg "github.com/maheshrc27/postdeck/configs"
	"github.com/maheshrc27/postdeck/internal/models"
	"github.com/maheshrc27/postdeck/internal/repository"
	"github.com/maheshrc27/postdeck/internal/transfer"
)

const (
	graphAPIVersion = "v23.0"

	notConfiguredMsg = "Facebook API não configurado. Configure FACEBOOK_ACCESS_TOKEN para publicar."
)

type FacebookService interface {
	Publish(ctx context.Context, postID string) (*transfer.PublishResult, error)
	Configured() bool
}

type facebookService struct {
	cfg    cfg.Config
	pr     repository.PostRepository
	client *http.Client
}

func NewFacebookService(cfg cfg.Config, pr repository.PostRepository) FacebookService {
	return &facebookService{
		cfg:    cfg,
		pr:     pr,
		client: http.DefaultClient,
	}
}

func (s *facebookService) Configured() bool {
	return s.cfg.FacebookConfigured()
}

// Publish pushes the post's image and caption to the Graph API and records
// the outcome. A post that reaches posted is terminal; failed posts stay
// publishable, so the operator's retry re-runs every precondition here.
func (s *facebookService) Publish(ctx context.Context, postID string) (*transfer.PublishResult, error) {
	if postID == "" {
		return nil, &ValidationError{Msg: "Post ID is required"}
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, &UpstreamError{Op: "database read", Msg: err.Error()}
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post"}
	}

	if !s.cfg.FacebookConfigured() {
		// The one precondition that records the failure before reporting it.
		s.markFailed(ctx, post, models.Metadata{
			"facebook_error": map[string]any{"message": "Facebook API not configured"},
		})
		return nil, &ConfigurationError{Msg: notConfiguredMsg}
	}

	if post.Status == models.PostStatusPosted && post.FacebookPostID != "" {
		return nil, &AlreadyPublishedError{Result: transfer.PublishResult{
			PostID:         post.ID,
			FacebookPostID: post.FacebookPostID,
			FacebookURL:    facebookURL(post.FacebookPostID),
		}}
	}

	slog.Info("posting to facebook", "post_id", postID, "image_url", post.ImageURL)

	result, rawBody, err := s.postPhoto(ctx, post)
	if err != nil {
		s.markFailed(ctx, post, models.Metadata{"facebook_error": rawBody})
		return nil, &UpstreamError{Op: "facebook api", Msg: extractErrorMessage(result)}
	}

	now := time.Now().UTC()
	status := models.PostStatusPosted
	updated, err := s.pr.Update(ctx, post.ID, &transfer.PostUpdate{
		Status:         &status,
		FacebookPostID: &result.ID,
		PostedAt:       &now,
		Metadata: post.Metadata.Merge(models.Metadata{
			"facebook_response": rawBody,
			"posted_at":         now.Format(time.RFC3339),
		}),
	})
	if err != nil {
		return nil, &UpstreamError{Op: "database update", Msg: err.Error()}
	}

	postedAt := now
	if updated != nil && updated.PostedAt != nil {
		postedAt = *updated.PostedAt
	}

	slog.Info("posted to facebook", "post_id", postID, "facebook_post_id", result.ID)

	return &transfer.PublishResult{
		PostID:         post.ID,
		FacebookPostID: result.ID,
		FacebookURL:    facebookURL(result.ID),
		PostedAt:       postedAt.Format(time.RFC3339),
	}, nil
}

// postPhoto issues the Graph API call. A transport error, a non-2xx status
// and a 2xx body carrying an error object are all the same failure class;
// rawBody is returned for the metadata audit trail either way.
func (s *facebookService) postPhoto(ctx context.Context, post *models.Post) (*transfer.FacebookPostResponse, any, error) {
	reqBody, err := json.Marshal(transfer.FacebookPostRequest{
		URL:         post.ImageURL,
		Message:     post.Content,
		AccessToken: s.cfg.FacebookAccessToken,
	})
	if err != nil {
		return nil, nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/me/photos", s.cfg.FacebookGraphBaseURL, graphAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error(err.Error())
		return nil, map[string]any{"message": err.Error()}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error(err.Error())
		return nil, map[string]any{"message": err.Error()}, err
	}

	var rawBody any
	if err := json.Unmarshal(body, &rawBody); err != nil {
		rawBody = string(body)
	}

	var result transfer.FacebookPostResponse
	if err := json.Unmarshal(body, &result); err != nil {
		slog.Info(err.Error())
		return nil, rawBody, fmt.Errorf("failed to decode facebook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || result.Error != nil {
		slog.Error("facebook api error", "status", resp.StatusCode, "body", string(body))
		return &result, rawBody, fmt.Errorf("facebook api returned status %d", resp.StatusCode)
	}

	return &result, rawBody, nil
}

// markFailed merges the diagnostic onto the post's metadata and flips the
// status. Best-effort: a write fault here is logged, the original failure
// still reaches the caller.
func (s *facebookService) markFailed(ctx context.Context, post *models.Post, diagnostic models.Metadata) {
	status := models.PostStatusFailed
	extra := diagnostic.Merge(models.Metadata{
		"failed_at": time.Now().UTC().Format(time.RFC3339),
	})

	_, err := s.pr.Update(ctx, post.ID, &transfer.PostUpdate{
		Status:   &status,
		Metadata: post.Metadata.Merge(extra),
	})
	if err != nil {
		slog.Error("failed to record publish failure", "post_id", post.ID, "error", err.Error())
	}
}

func extractErrorMessage(result *transfer.FacebookPostResponse) string {
	if result != nil && result.Error != nil && result.Error.Message != "" {
		return result.Error.Message
	}
	return "Facebook API request failed"
}

func facebookURL(facebookPostID string) string {
	return fmt.Sprintf("https://facebook.com/%s", facebookPostID)
}
