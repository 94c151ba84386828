package realtime

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgradeRejectsPlainRequests(t *testing.T) {
	app := fiber.New()
	hub := NewHub()
	app.Use("/ws", Upgrade)
	app.Get("/ws", hub.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())

	// no clients registered; must not panic
	hub.Broadcast([]byte(`{"action":"INSERT","id":"abc"}`))
}
