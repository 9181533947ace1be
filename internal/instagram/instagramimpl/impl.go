package instagramimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/chapala/instagram-story-metrics/internal/instagram"
	"github.com/chapala/instagram-story-metrics/internal/ratelimit"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"github.com/chapala/instagram-story-metrics/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter
}

type GraphImpl struct {
	httpClient *http.Client
	baseURL    string
	pageSize   int
	maxPages   int
	limiter    ratelimit.Limiter
	logger     logger.Logger
	retryCfg   retry.Config
}

func New(opts Opts) *GraphImpl {
	return &GraphImpl{
		httpClient: &http.Client{Timeout: opts.Config.Graph.Timeout},
		baseURL:    opts.Config.Graph.BaseURL,
		pageSize:   opts.Config.Graph.PageSize,
		maxPages:   opts.Config.Graph.MaxPages,
		limiter:    opts.Limiter,
		logger:     opts.Logger.WithComponent("GraphClient"),
		retryCfg:   retry.DefaultConfig(),
	}
}

var _ instagram.Client = (*GraphImpl)(nil)

// getJSON performs one rate-limited GET against the Graph API and decodes the
// response, retrying transient failures with backoff.
func (g *GraphImpl) getJSON(ctx context.Context, account, endpoint string, out any) error {
	if err := g.limiter.Wait(ctx, account); err != nil {
		return err
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := g.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("graph api returned status %d", resp.StatusCode)
			if !errs.IsRetryableStatus(resp.StatusCode) {
				return backoff.Permanent(err)
			}
			return err
		}

		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode graph response: %w", err))
		}
		return nil
	}

	return retry.Do(ctx, g.logger, "graph api request", operation, g.retryCfg)
}
