package handlers

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"ecoscan-backend/services"
	"ecoscan-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupClassifyRoutes(app *fiber.App, classifyService *services.ClassifyService) {
	app.Post("/classify", func(c *fiber.Ctx) error {
		// username presence is enforced by middleware.RequireUsername
		username := c.FormValue("username")

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No image uploaded.",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No image uploaded.",
			})
		}
		image, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No image uploaded.",
			})
		}

		// The archive is best-effort; classification never blocks on it.
		if utils.R2Enabled() {
			key := fmt.Sprintf("scans/%s/%s%s", username, uuid.NewString(), filepath.Ext(fileHeader.Filename))
			if _, err := utils.ArchiveScanImage(fileHeader, key); err != nil {
				log.Printf("failed to archive scan image for %s: %v", username, err)
			}
		}

		outcome, err := classifyService.Record(username, image)
		if err != nil {
			log.Printf("classification failed for %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}

		resp := fiber.Map{
			"type":     outcome.Result.Type,
			"action":   outcome.Result.Action,
			"disposal": outcome.Result.Disposal,
			"points":   outcome.Result.Points,
			"total":    outcome.NewTotal,
			"level":    outcome.Level,
		}
		if outcome.DailyBonus > 0 {
			resp["daily_bonus"] = outcome.DailyBonus
		}
		if len(outcome.NewAchievements) > 0 {
			resp["achievements"] = outcome.NewAchievements
		}
		return c.JSON(resp)
	})

	app.Get("/history", func(c *fiber.Ctx) error {
		username := c.Query("username")
		if username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Username required.",
			})
		}
		events, err := classifyService.History(username)
		if err != nil {
			log.Printf("failed to load history for %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		return c.JSON(events)
	})
}
