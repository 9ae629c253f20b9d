package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/repositories"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/services"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	// .env is optional; environment variables override config.toml either way.
	_ = godotenv.Load()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	bookService := services.NewBookService(config.API, nil)
	apiService := services.NewAPIService(config.API.BaseURL, nil)

	identityService, err := services.NewOAuthIdentityService(config.Identity, nil)
	if err != nil {
		logger.Fatalf("identity configuration error: %v", err)
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		logger.Fatalf("failed to run migrations: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Catalog:  bookService,
		Users:    bookService,
		Identity: identityService,
		API:      apiService,
		Sessions: repositories.NewSessionRepository(db),
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "bookcat",
		Usage:    "Manage your personal book catalogue",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
