package exporter

import (
	"context"

	"github.com/chapala/instagram-story-metrics/internal/domain"
)

// Client runs story metrics exports. Every method returns a structured result;
// pipeline failures never escape as errors or panics.
type Client interface {
	// Run exports the trailing day's story metrics for one account.
	Run(ctx context.Context, account string) domain.RunResult

	// RunFromFile processes stories from a local JSON dump instead of the
	// story listing endpoint, still fetching metrics and uploading.
	RunFromFile(ctx context.Context, account, path string) domain.RunResult

	// RunBatch validates the requested accounts against the supported set and
	// fans Run out across them. localFile, when set, applies to every account.
	RunBatch(ctx context.Context, accounts []string, localFile string) domain.BatchResult

	// ScheduleDailyExport registers the daily all-accounts export job, if
	// enabled by configuration.
	ScheduleDailyExport(ctx context.Context) error
}
