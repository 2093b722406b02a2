package handlers

import (
	"log"

	"ecoscan-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupBoardRoutes wires the leaderboard, user sync, guide, feedback and
// profile endpoints.
func SetupBoardRoutes(
	app *fiber.App,
	scoreService *services.ScoreService,
	leaderboardService *services.LeaderboardService,
	achievementService *services.AchievementService,
	feedbackService *services.FeedbackService,
	progressStore services.DailyProgressStore,
) {
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries, err := leaderboardService.Top(services.DefaultLeaderboardSize)
		if err != nil {
			log.Printf("failed to load leaderboard: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		return c.JSON(entries)
	})

	upsertPoints := func(okMessage string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			var req struct {
				Username string `json:"username"`
				Points   *int   `json:"points"`
			}
			if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Points == nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Username and points are required.",
				})
			}
			// Totals are never negative; reject rather than store a
			// total no award path could produce.
			if *req.Points < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Points must be non-negative.",
				})
			}
			if err := scoreService.SetPoints(req.Username, *req.Points); err != nil {
				log.Printf("failed to save points for %s: %v", req.Username, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal server error.",
				})
			}
			return c.JSON(fiber.Map{"message": okMessage})
		}
	}

	// Both POSTs are the client-local sync path: a direct total overwrite.
	app.Post("/leaderboard", upsertPoints("Leaderboard updated."))
	app.Post("/user", upsertPoints("User updated."))

	app.Get("/guide", func(c *fiber.Ctx) error {
		return c.JSON(services.GuideSearch(c.Query("search")))
	})

	app.Post("/feedback", func(c *fiber.Ctx) error {
		var req struct {
			Feedback string `json:"feedback"`
			Username string `json:"username"`
		}
		if err := c.BodyParser(&req); err != nil || req.Feedback == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Feedback is required.",
			})
		}
		if err := feedbackService.Submit(req.Feedback, req.Username); err != nil {
			log.Printf("failed to save feedback: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		return c.JSON(fiber.Map{"message": "Feedback saved."})
	})

	app.Get("/profile", func(c *fiber.Ctx) error {
		username := c.Query("username")
		if username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Username required.",
			})
		}

		points, err := scoreService.GetPoints(username)
		if err != nil {
			log.Printf("failed to load profile for %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		unlocked, err := achievementService.UnlockedFor(username)
		if err != nil {
			log.Printf("failed to load achievements for %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		rank, err := leaderboardService.RankOf(username)
		if err != nil {
			log.Printf("failed to rank %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}

		progress, err := progressStore.Progress(username)
		if err != nil {
			log.Printf("failed to load daily progress for %s: %v", username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error.",
			})
		}
		// View-only projection: a stale date reads as a fresh day.
		projected, _ := services.AdvanceDaily(progress, services.Today(), 0)

		var rankValue interface{}
		if rank > 0 {
			rankValue = rank
		}
		if unlocked == nil {
			unlocked = []string{}
		}

		return c.JSON(fiber.Map{
			"username":     username,
			"points":       points,
			"level":        services.LevelFor(points),
			"rank":         rankValue,
			"achievements": unlocked,
			"daily": fiber.Map{
				"date":      projected.Date,
				"count":     projected.Count,
				"completed": projected.Completed,
			},
		})
	})
}
