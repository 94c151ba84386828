package service

import (
	"context"
	"log/slog"

	"github.com/maheshrc27/postdeck/internal/models"
	"github.com/maheshrc27/postdeck/internal/repository"
)

type PostService interface {
	List(ctx context.Context, status string) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID string) (*models.Post, error)
	Remove(ctx context.Context, postID string) error
}

type postService struct {
	pr      repository.PostRepository
	storage Storage
}

func NewPostService(pr repository.PostRepository, storage Storage) PostService {
	return &postService{pr: pr, storage: storage}
}

func (s *postService) List(ctx context.Context, status string) ([]*models.Post, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, &ValidationError{Msg: "unknown status filter"}
	}

	posts, err := s.pr.List(ctx, status)
	if err != nil {
		return nil, &UpstreamError{Op: "database read", Msg: "failed to fetch posts"}
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID string) (*models.Post, error) {
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
	return post, nil
}

// Remove deletes the row, then cleans up the stored image. The row deletion
// is the success criterion; a storage fault is logged and swallowed.
func (s *postService) Remove(ctx context.Context, postID string) error {
	if postID == "" {
		return &ValidationError{Msg: "Post ID is required"}
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return &UpstreamError{Op: "database read", Msg: err.Error()}
	}
	if post == nil {
		return &NotFoundError{Resource: "post"}
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return &UpstreamError{Op: "database delete", Msg: "failed to delete post"}
	}

	if filename := imageKey(post); filename != "" {
		if err := s.storage.Delete(ctx, filename); err != nil {
			slog.Warn("failed to delete image from storage", "post_id", postID, "filename", filename, "error", err.Error())
		}
	}

	return nil
}

// imageKey resolves the storage key for a post's image, preferring the
// metadata record over the column.
func imageKey(post *models.Post) string {
	if post.Metadata != nil {
		if v, ok := post.Metadata["filename"].(string); ok && v != "" {
			return v
		}
	}
	return post.OriginalFilename
}
