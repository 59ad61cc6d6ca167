package cookie

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie = "browse_session"
	viewCookie    = "last_view"
)

func GetLastView(c *fiber.Ctx) string {
	return c.Cookies(viewCookie, "grid") // default to grid
}

func SetLastView(c *fiber.Ctx, view string) {
	c.Cookie(&fiber.Cookie{
		Name:     viewCookie,
		Value:    view,
		MaxAge:   30 * 24 * 60 * 60, // 30 days
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Strict",
	})
}

// GetSessionID returns the browsing session id, issuing a new one when the
// request has none or carries something that is not a UUID.
func GetSessionID(c *fiber.Ctx, ttl time.Duration) string {
	if id := c.Cookies(sessionCookie); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: "Lax",
	})
	return id
}
