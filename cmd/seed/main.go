package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"dataroom/internal/auth"
	"dataroom/internal/config"
	"dataroom/internal/repository"
	"dataroom/internal/seed"
	dataroomService "dataroom/internal/service/dataroom"
	"dataroom/internal/service/dataroom/extractor"
	"dataroom/internal/storage/backend"
)

func main() {
	// Parse command-line flags
	fixturePath := flag.String("fixture", "", "YAML fixture to load (default: built-in sample)")
	userID := flag.String("user", "dev-user", "Owner of the seeded data rooms")
	clearData := flag.Bool("clear-data", false, "Delete the user's data rooms before seeding")
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "Lifetime of the printed dev token")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	fx := seed.Sample()
	if *fixturePath != "" {
		var err error
		if fx, err = seed.Load(*fixturePath); err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
	}

	ctx := context.Background()

	if *dropTables {
		log.Printf("🗑️  Dropping all tables (prefix: %s)...", cfg.TablePrefix)
		if err := repository.DropTables(ctx, cfg); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	repos, closeRepos, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open repositories: %v", err)
	}
	defer closeRepos()

	store, storeCloser, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open content store: %v", err)
	}
	defer storeCloser.Close()

	services := dataroomService.SetupServices(repos, store, extractor.NewRegistry(store), cfg, logger)
	seeder := seed.NewSeeder(services, logger)

	log.Printf("🌱 Seeding data rooms (environment: %s, user: %s)", cfg.Environment, *userID)

	if *clearData {
		n, err := seeder.Clear(ctx, *userID)
		if err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Printf("🧹 Deleted %d data rooms", n)
	}

	res, err := seeder.Apply(ctx, *userID, fx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("✅ Created %d data rooms, %d folders, %d files (%d skipped)",
		res.Rooms, res.Folders, res.Files, res.Skipped)

	if cfg.JWTSecret != "" {
		token, err := auth.IssueToken(cfg.JWTSecret, *userID, *tokenTTL)
		if err != nil {
			log.Fatalf("Failed to issue dev token: %v", err)
		}
		fmt.Printf("\nDev token for %s (valid %s):\n%s\n", *userID, *tokenTTL, token)
	}

	log.Println("🎉 Seeding complete!")
}
