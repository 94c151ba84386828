package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postdeck/internal/service"
)

// All endpoints answer with the same envelope:
// {success, data?, error?, message?}.

func success(c *fiber.Ctx, data any, message string) error {
	body := fiber.Map{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// statusForError maps the service error taxonomy onto HTTP statuses:
// 400 for caller-fixable, 404 for a missing resource, 500 for the rest.
// Graph API failures count as caller-visible 400s, matching the dashboard's
// expectation that the error text is shown next to the retry button.
func statusForError(err error) int {
	var (
		validation *service.ValidationError
		notFound   *service.NotFoundError
		configErr  *service.ConfigurationError
		published  *service.AlreadyPublishedError
		upstream   *service.UpstreamError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &configErr), errors.As(err, &published):
		return fiber.StatusBadRequest
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &upstream):
		if upstream.Op == "facebook api" {
			return fiber.StatusBadRequest
		}
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}
