package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postdeck/configs"
)

type WebhookMiddleware struct {
	cfg config.Config
}

func NewWebhookMiddleware(cfg config.Config) *WebhookMiddleware {
	return &WebhookMiddleware{cfg: cfg}
}

// RequireKey gates the ingest endpoint behind the shared workflow key.
// With no key configured the check is disabled, matching a local setup
// where the workflow and dashboard run on the same trusted network.
func (m *WebhookMiddleware) RequireKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.cfg.WebhookAPIKey == "" {
			return c.Next()
		}

		key := c.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.cfg.WebhookAPIKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid or missing API key",
			})
		}

		return c.Next()
	}
}
