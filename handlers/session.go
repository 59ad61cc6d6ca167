package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/carsawa/site/config"
	"github.com/carsawa/site/cookie"
	"github.com/carsawa/site/local"
)

// SessionRequired attaches the browsing session to the request, issuing a
// cookie for first-time visitors.
func SessionRequired(c *fiber.Ctx) error {
	local.SetSessionID(c, cookie.GetSessionID(c, config.SessionTTL))
	return c.Next()
}

func sessionID(c *fiber.Ctx) string {
	if id := local.GetSessionID(c); id != "" {
		return id
	}
	id := cookie.GetSessionID(c, config.SessionTTL)
	local.SetSessionID(c, id)
	return id
}

// browseKey names the reducer state of one rendered car browser within a
// session. An absent or malformed browse id falls back to the session's
// shared state and is returned empty.
func browseKey(sessionID, browseID string) (string, string) {
	if _, err := uuid.Parse(browseID); err != nil {
		return sessionID, ""
	}
	return sessionID + ":" + browseID, browseID
}
