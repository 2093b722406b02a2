package handlers

import (
	"errors"
	"log"

	"ecoscan-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	app.Get("/challenges", func(c *fiber.Ctx) error {
		username := c.Query("username")
		views, err := challengeService.ChallengesFor(services.Today(), username)
		if err != nil {
			log.Printf("failed to load challenges: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		return c.JSON(views)
	})

	app.Post("/challenges", func(c *fiber.Ctx) error {
		var req struct {
			ChallengeID string `json:"challengeId"`
			Username    string `json:"username"`
		}
		if err := c.BodyParser(&req); err != nil || req.ChallengeID == "" || req.Username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Challenge ID and username required.",
			})
		}

		points, err := challengeService.Complete(req.ChallengeID, req.Username)
		if err != nil {
			if errors.Is(err, services.ErrChallengeUnavailable) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Challenge not found or already completed.",
				})
			}
			log.Printf("failed to complete challenge %s for %s: %v", req.ChallengeID, req.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		return c.JSON(fiber.Map{"points": points})
	})
}
