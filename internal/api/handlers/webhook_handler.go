package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postdeck/internal/service"
	"github.com/maheshrc27/postdeck/internal/transfer"
)

type WebhookHandler struct {
	s service.IngestService
}

func NewWebhookHandler(s service.IngestService) *WebhookHandler {
	return &WebhookHandler{s: s}
}

// Receive ingests one generated post from the n8n workflow. There are no
// retries here; the workflow re-sends on a non-2xx answer.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var payload transfer.WebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		slog.Info(err.Error())
		return fail(c, fiber.StatusBadRequest, "Unable to parse webhook payload")
	}

	result, err := h.s.Ingest(c.Context(), &payload)
	if err != nil {
		return fail(c, statusForError(err), err.Error())
	}

	return success(c, result, "Post created successfully and ready for approval")
}

// Info answers health checks against the webhook URL.
func (h *WebhookHandler) Info(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Postdeck Webhook Endpoint Active",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": fiber.Map{
			"POST": "Receives webhook data from n8n",
			"GET":  "Health check",
		},
	})
}
