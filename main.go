package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ecoscan-backend/handlers"
	"ecoscan-backend/middleware"
	"ecoscan-backend/models"
	"ecoscan-backend/services"
	"ecoscan-backend/utils"
	"ecoscan-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB — waste photos, not game builds
	})

	logger := log.New(os.Stdout, "[EcoScan] ", log.LstdFlags)
	app.Use(middleware.RequestLogger(logger))

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Reject username-less writes before they reach any core logic.
	app.Use(middleware.RequireUsername())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Classification{},
		&models.Challenge{},
		&models.DailyProgress{},
		&models.UserAchievement{},
		&models.Feedback{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize scan image archive:", err)
	}

	store := services.NewGormStore(db)
	scoreService := services.NewScoreService(store)
	leaderboardService := services.NewLeaderboardService(store)
	achievementService := services.NewAchievementService(store, services.DefaultAchievementRules())
	challengeService := services.NewChallengeService(store, store)
	feedbackService := services.NewFeedbackService(store)
	classifyService := services.NewClassifyService(store, services.NewRandomOracle(), achievementService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := challengeService.EnsureSeeded(services.Today()); err != nil {
		log.Printf("initial challenge seeding failed: %v", err)
	}
	challengeService.StartChallengeScheduler()
	go workers.PollDailyResets(ctx, store, 5*time.Minute)

	handlers.SetupClassifyRoutes(app, classifyService)
	handlers.SetupChallengeRoutes(app, challengeService)
	handlers.SetupBoardRoutes(app, scoreService, leaderboardService, achievementService, feedbackService, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	if utils.R2Enabled() {
		log.Println("Scan image archive enabled")
	}

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
