package local

import "github.com/gofiber/fiber/v2"

const sessionKey = "sessionID"

func GetSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionKey).(string)
	return id
}

func SetSessionID(c *fiber.Ctx, id string) {
	c.Locals(sessionKey, id)
}
