package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// paths that must carry a username on POST before any core logic runs.
var usernameRequired = map[string]bool{
	"/classify":   true,
	"/challenges": true,
	"/user":       true,
}

// RequireUsername rejects POSTs to the gated paths when no username is
// present in the form, multipart or JSON body.
func RequireUsername() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost || !usernameRequired[c.Path()] {
			return c.Next()
		}

		username := c.FormValue("username")
		if username == "" {
			var body struct {
				Username string `json:"username"`
			}
			if err := c.BodyParser(&body); err == nil {
				username = body.Username
			}
		}
		if username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Username is required.",
			})
		}
		return c.Next()
	}
}
