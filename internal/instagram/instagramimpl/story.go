package instagramimpl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/instagram"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
)

const storyFields = "id,timestamp,media_type,permalink,media_url,media_product_type"

type storyListResponse struct {
	Data   []domain.Story `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func (g *GraphImpl) FetchStories(ctx context.Context, creds instagram.Credentials, since, until time.Time) ([]domain.Story, error) {
	q := url.Values{}
	q.Set("access_token", creds.AccessToken)
	q.Set("fields", storyFields)
	q.Set("limit", strconv.Itoa(g.pageSize))
	endpoint := fmt.Sprintf("%s/%s/stories?%s", g.baseURL, creds.BusinessID, q.Encode())

	loc := domain.ReportingZone()
	var stories []domain.Story

	// The listing is assumed strictly date-descending; earlyStop is disabled
	// for the rest of the scan if that assumption is ever observed broken, so
	// an out-of-order page cannot lose in-window stories.
	earlyStop := true
	var prevDate time.Time
	havePrev := false

	for page := 0; endpoint != "" && page < g.maxPages; page++ {
		var resp storyListResponse
		if err := g.getJSON(ctx, creds.Account, endpoint, &resp); err != nil {
			g.logger.Error("Error fetching stories", "account", creds.Account, "error", err)
			return nil, fmt.Errorf("%w: %v", errs.ErrUpstreamFetch, err)
		}

		for _, story := range resp.Data {
			storyDate := domain.DateIn(story.Timestamp, loc)

			if havePrev && earlyStop && storyDate.After(prevDate) {
				g.logger.Warn("Story listing is not date-descending, falling back to full scan",
					"account", creds.Account, "story_id", story.ID)
				earlyStop = false
			}
			prevDate = storyDate
			havePrev = true

			switch {
			case storyDate.After(until):
				g.logger.Debug("Skipping story, too recent for metrics", "story_id", story.ID, "date", storyDate.Format("2006-01-02"))
			case storyDate.Before(since):
				if earlyStop {
					g.logger.Info("Reached stories before start date, stopping pagination", "account", creds.Account)
					return stories, nil
				}
			default:
				stories = append(stories, story)
			}
		}

		// Next page URL carries all request params.
		endpoint = resp.Paging.Next
	}

	g.logger.Info("Fetched stories for date range",
		"account", creds.Account,
		"count", len(stories),
		"since", since.Format("2006-01-02"),
		"until", until.Format("2006-01-02"),
	)
	return stories, nil
}
