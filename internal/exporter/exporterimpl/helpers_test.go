package exporterimpl

import (
	"context"
	"sync"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/instagram"
	"github.com/chapala/instagram-story-metrics/internal/repositories/runs"
	"github.com/chapala/instagram-story-metrics/internal/storage"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
)

type stubResolver struct {
	values map[string]string
	errs   map[string]error
}

func (s *stubResolver) Get(_ context.Context, name string) (string, error) {
	if err, ok := s.errs[name]; ok {
		return "", err
	}
	if value, ok := s.values[name]; ok {
		return value, nil
	}
	return "stub-" + name, nil
}

type stubInstagram struct {
	verify       func(account string) bool
	fetchStories func(account string) ([]domain.Story, error)
	fetchMetrics func(storyID string) domain.MetricsRecord
}

func (s *stubInstagram) VerifyTokenScopes(_ context.Context, creds instagram.Credentials) bool {
	if s.verify == nil {
		return true
	}
	return s.verify(creds.Account)
}

func (s *stubInstagram) FetchStories(_ context.Context, creds instagram.Credentials, _, _ time.Time) ([]domain.Story, error) {
	if s.fetchStories == nil {
		return nil, nil
	}
	return s.fetchStories(creds.Account)
}

func (s *stubInstagram) FetchStoryMetrics(_ context.Context, _ instagram.Credentials, storyID string) domain.MetricsRecord {
	if s.fetchMetrics == nil {
		return domain.MetricsRecord{}
	}
	return s.fetchMetrics(storyID)
}

type countingUploader struct {
	mu      sync.Mutex
	uploads []string
}

func (c *countingUploader) Upload(_ context.Context, key, _ string, _ []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploads = append(c.uploads, key)
	return nil
}

func (c *countingUploader) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.uploads)
}

type recordingRuns struct {
	mu      sync.Mutex
	records []runs.Record
	err     error
}

func (r *recordingRuns) Create(_ context.Context, rec runs.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return r.err
}

func (r *recordingRuns) ListRecent(context.Context, string, int) ([]*runs.Record, error) {
	return nil, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches []domain.BatchResult
}

func (n *recordingNotifier) NotifyBatchFailures(batch domain.BatchResult) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, batch)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Secrets.AccessTokenName = "fb_access_token"
	cfg.Secrets.BusinessIDPrefix = "ig_business_id_"
	cfg.Exporter.DefaultAccount = "NPI"
	cfg.Exporter.BatchWait = time.Minute
	return cfg
}

type testDeps struct {
	resolver  *stubResolver
	instagram *stubInstagram
	uploader  *countingUploader
	runs      *recordingRuns
	notifier  *recordingNotifier
	config    *config.Config
}

func newTestExporter(deps testDeps) *ExporterImpl {
	if deps.resolver == nil {
		deps.resolver = &stubResolver{}
	}
	if deps.instagram == nil {
		deps.instagram = &stubInstagram{}
	}
	if deps.uploader == nil {
		deps.uploader = &countingUploader{}
	}
	if deps.config == nil {
		deps.config = testConfig()
	}

	lg := logger.New(logger.Opts{})
	opts := Opts{
		Secrets:   deps.resolver,
		Instagram: deps.instagram,
		Writer:    storage.NewWriter(deps.uploader, lg),
		Logger:    lg,
		Config:    deps.config,
	}
	if deps.runs != nil {
		opts.Runs = deps.runs
	}
	if deps.notifier != nil {
		opts.Notifier = deps.notifier
	}
	return New(opts)
}
