package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/peakyminds/challenge-seo/src/app"
)

// prerender performs one static generation pass over every known challenge
// and stores the pages in the shared cache.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
		log.Println("Proceeding with environment variables from system...")
	}

	config := app.NewAppConfig()

	logger := app.InitLogger(*config.LogLevel, "prerender")

	ctx := context.Background()
	ctx = logger.WithContext(ctx)

	application, err := app.NewApplication(ctx, *config)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Shutdown(ctx)

	report := application.PrerenderService.Run(ctx)
	if report.PathsErr != nil {
		logger.Error().Err(report.PathsErr).Msg("Path enumeration failed, nothing was prerendered")
		application.Shutdown(ctx)
		os.Exit(1)
	}

	logger.Info().
		Int("paths", report.Paths).
		Int("rendered", report.Rendered).
		Int("failed", report.Failed).
		Msg("Prerender complete")
}
