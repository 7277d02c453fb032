package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hray3182/RemindSnap/internal/ai"
	"github.com/hray3182/RemindSnap/internal/config"
	"github.com/hray3182/RemindSnap/internal/database"
	"github.com/hray3182/RemindSnap/internal/messenger"
	"github.com/hray3182/RemindSnap/internal/notifier"
	"github.com/hray3182/RemindSnap/internal/repository"
	"github.com/hray3182/RemindSnap/internal/server"
	"github.com/hray3182/RemindSnap/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate required config
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}
	if cfg.TelegramChatID == 0 {
		log.Fatal("TELEGRAM_CHAT_ID is required")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Initialize AI client (optional)
	var extractor server.Extractor
	if cfg.AIAPIKey != "" {
		extractor = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.Printf("AI client initialized (model: %s)", cfg.AIModel)
	} else {
		log.Println("AI client not configured, photo extraction disabled")
	}

	// Create Telegram sender for the notifier
	sender, err := messenger.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Fatalf("Failed to create Telegram sender: %v", err)
	}

	repo := repository.NewReminderRepository(db)

	// Create and start the due-reminder notifier
	notif := notifier.New(repo, sender, cfg.CheckInterval)
	go notif.Start(ctx)

	reminders := service.New(repo, notif.Notify)
	srv := server.New(reminders, extractor, cfg.Port, cfg.UploadDir)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
