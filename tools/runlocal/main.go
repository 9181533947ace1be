package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/exporter/exporterimpl"
	"github.com/chapala/instagram-story-metrics/internal/instagram/instagramimpl"
	"github.com/chapala/instagram-story-metrics/internal/ratelimit"
	"github.com/chapala/instagram-story-metrics/internal/secrets/secretsimpl"
	"github.com/chapala/instagram-story-metrics/internal/storage"
	"github.com/chapala/instagram-story-metrics/internal/storage/s3impl"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
)

// runlocal exercises the full export pipeline for every supported account
// without the HTTP server, scheduler, or database. Useful for checking
// credentials and bucket access from a developer machine.
func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg := logger.New(logger.Opts{Env: cfg.App.Env})

	resolver, err := secretsimpl.New(secretsimpl.Opts{Config: cfg, Logger: lg})
	if err != nil {
		log.Fatalf("Failed to create secrets resolver: %v", err)
	}

	uploader, err := s3impl.New(s3impl.Opts{Config: cfg, Logger: lg})
	if err != nil {
		log.Fatalf("Failed to create uploader: %v", err)
	}

	exp := exporterimpl.New(exporterimpl.Opts{
		Secrets: resolver,
		Instagram: instagramimpl.New(instagramimpl.Opts{
			Config:  cfg,
			Logger:  lg,
			Limiter: ratelimit.NewInMemoryLimiter(200, time.Hour, 10),
		}),
		Writer: storage.NewWriter(uploader, lg),
		Logger: lg,
		Config: cfg,
	})

	ctx := context.Background()
	failed := false

	for _, account := range domain.SupportedAccounts {
		fmt.Printf("\n=== %s ===\n", account)
		res := exp.Run(ctx, account)

		out, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(out))

		if res.Status == domain.RunStatusError {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
