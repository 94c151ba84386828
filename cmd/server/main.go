package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/postdeck/configs"
	"github.com/maheshrc27/postdeck/internal/api/handlers"
	"github.com/maheshrc27/postdeck/internal/api/middleware"
	"github.com/maheshrc27/postdeck/internal/realtime"
	"github.com/maheshrc27/postdeck/internal/repository"
	"github.com/maheshrc27/postdeck/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    25 * 1024 * 1024, // base64 images from the workflow
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Internal server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-API-Key",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)

	r2Service := service.NewR2Service(*cfg)
	ingestService := service.NewIngestService(postRepo, r2Service)
	facebookService := service.NewFacebookService(*cfg, postRepo)
	postService := service.NewPostService(postRepo, r2Service)

	webhookMiddleware := middleware.NewWebhookMiddleware(*cfg)

	webhook := handlers.NewWebhookHandler(ingestService)
	app.Post("/webhook", webhookMiddleware.RequireKey(), webhook.Receive)
	app.Get("/webhook", webhook.Info)

	facebook := handlers.NewFacebookHandler(facebookService)
	app.Post("/facebook-post", facebook.Publish)
	app.Get("/facebook-post", facebook.Status)

	post := handlers.NewPostHandler(postService)
	app.Get("/posts", post.ListPosts)
	app.Delete("/posts", post.RemovePost)

	// realtime change feed for the dashboard
	hub := realtime.NewHub()
	app.Use("/ws", realtime.Upgrade)
	app.Get("/ws", hub.Handler())

	listenCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()
	if err := realtime.ListenPostChanges(listenCtx, cfg.PostgresURI, hub); err != nil {
		log.Fatalf("Failed to start postgres listener: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db, stopListener)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, stopListener context.CancelFunc) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopListener()
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
