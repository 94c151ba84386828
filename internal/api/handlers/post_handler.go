package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postdeck/internal/service"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{s: s}
}

// ListPosts returns all posts newest-first, optionally filtered by status.
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	status := c.Query("status")

	posts, err := h.s.List(c.Context(), status)
	if err != nil {
		return fail(c, statusForError(err), err.Error())
	}

	return success(c, posts, fmt.Sprintf("Retrieved %d posts", len(posts)))
}

// RemovePost deletes a post and cleans up its stored image. Image cleanup is
// best-effort inside the service; row deletion decides the response.
func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID := c.Query("id")
	if postID == "" {
		return fail(c, fiber.StatusBadRequest, "Post ID is required")
	}

	if err := h.s.Remove(c.Context(), postID); err != nil {
		return fail(c, statusForError(err), err.Error())
	}

	return success(c, nil, "Post deleted successfully")
}
