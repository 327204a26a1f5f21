package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"folio/config"
	"folio/database"
	"folio/logger"
	"folio/models"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	list := flag.Bool("list", false, "print the embedded migrations and exit")
	skipSeed := flag.Bool("skip-seed", false, "do not create or update the admin account")
	profilePath := flag.String("profile", "", "JSON file of experiences and education to import, replacing existing rows")
	flag.Parse()

	if *list {
		migrations, err := database.Migrations()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, m := range migrations {
			fmt.Println(m.Name)
		}
		return
	}

	godotenv.Load()
	cfg := config.LoadPartial()

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer log.Sync()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database.URL, log)
	if err != nil {
		log.Fatal("Failed to connect", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("All migrations completed")

	if *profilePath != "" {
		profile, err := readProfile(*profilePath)
		if err != nil {
			log.Fatal("Failed to read profile", zap.String("path", *profilePath), zap.Error(err))
		}
		if err := db.ReplaceProfile(ctx, profile); err != nil {
			log.Fatal("Failed to import profile", zap.Error(err))
		}
	}

	if *skipSeed {
		return
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Info("FOLIO_ADMIN_EMAIL or FOLIO_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	admin, err := db.UpsertAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		log.Fatal("Failed to seed admin", zap.Error(err))
	}
	log.Info("Admin account ready", zap.String("email", admin.Email))
}

func readProfile(path string) (models.Profile, error) {
	var p models.Profile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("invalid profile JSON: %w", err)
	}
	return p, nil
}
