package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postdeck/internal/service"
)

type FacebookHandler struct {
	s service.FacebookService
}

func NewFacebookHandler(s service.FacebookService) *FacebookHandler {
	return &FacebookHandler{s: s}
}

// Publish pushes one approved post to Facebook. The same endpoint serves the
// retry button on failed posts.
func (h *FacebookHandler) Publish(c *fiber.Ctx) error {
	var body struct {
		PostID string `json:"postId"`
	}
	if err := c.BodyParser(&body); err != nil {
		slog.Info(err.Error())
		return fail(c, fiber.StatusBadRequest, "Unable to parse request body")
	}

	result, err := h.s.Publish(c.Context(), body.PostID)
	if err != nil {
		var published *service.AlreadyPublishedError
		if errors.As(err, &published) {
			// Keep the existing id and permalink in the error payload so
			// the dashboard can still link to the post.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   published.Error(),
				"data":    published.Result,
			})
		}
		return fail(c, statusForError(err), err.Error())
	}

	return success(c, result, "Successfully posted to Facebook!")
}

// Status reports whether the page access token is configured.
func (h *FacebookHandler) Status(c *fiber.Ctx) error {
	configured := h.s.Configured()

	status := "Configure FACEBOOK_ACCESS_TOKEN no .env.local"
	if configured {
		status = "Configurado"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":              "Postdeck Facebook Posting Endpoint",
		"status":               "Active",
		"facebook_configured":  configured,
		"configuration_status": status,
	})
}
