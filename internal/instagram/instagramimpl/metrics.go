package instagramimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/chapala/instagram-story-metrics/internal/domain"
	"github.com/chapala/instagram-story-metrics/internal/instagram"
)

const aggregateMetrics = "reach,replies,shares,total_interactions,views,profile_visits,follows"

// metricValue is the value slot of one insight entry. The navigation metric
// returns either a plain counter or a per-action-type breakdown depending on
// whether a breakdown dimension was requested, so the shape is decoded into an
// explicit variant here at the API boundary.
type metricValue struct {
	Scalar    int64
	Breakdown map[string]int64
}

func (v *metricValue) UnmarshalJSON(b []byte) error {
	var breakdown map[string]int64
	if err := json.Unmarshal(b, &breakdown); err == nil {
		v.Breakdown = breakdown
		return nil
	}
	var scalar int64
	if err := json.Unmarshal(b, &scalar); err != nil {
		return fmt.Errorf("metric value is neither a counter nor a breakdown: %s", b)
	}
	v.Scalar = scalar
	return nil
}

type insightsResponse struct {
	Data []struct {
		Name   string `json:"name"`
		Values []struct {
			Value metricValue `json:"value"`
		} `json:"values"`
	} `json:"data"`
}

// FetchStoryMetrics fetches both metric groups for one story. The two fetches
// fail independently: a navigation failure leaves the five navigation counters
// at zero and the aggregate fetch is still attempted, and vice versa.
func (g *GraphImpl) FetchStoryMetrics(ctx context.Context, creds instagram.Credentials, storyID string) domain.MetricsRecord {
	var rec domain.MetricsRecord
	g.fetchNavigation(ctx, creds, storyID, &rec)
	g.fetchAggregates(ctx, creds, storyID, &rec)
	return rec
}

func (g *GraphImpl) fetchNavigation(ctx context.Context, creds instagram.Credentials, storyID string, rec *domain.MetricsRecord) {
	q := url.Values{}
	q.Set("access_token", creds.AccessToken)
	q.Set("metric", "navigation")
	q.Set("breakdown", "story_navigation_action_type")
	endpoint := fmt.Sprintf("%s/%s/insights?%s", g.baseURL, storyID, q.Encode())

	var resp insightsResponse
	if err := g.getJSON(ctx, creds.Account, endpoint, &resp); err != nil {
		g.logger.Warn("Error fetching navigation metrics, defaulting to zero", "story_id", storyID, "error", err)
		return
	}

	for _, metric := range resp.Data {
		if metric.Name != "navigation" {
			continue
		}
		for _, value := range metric.Values {
			if value.Value.Breakdown == nil {
				rec.NavigationTotal = value.Value.Scalar
				continue
			}
			for actionType, count := range value.Value.Breakdown {
				switch actionType {
				case "TAP_FORWARD":
					rec.TapsForward = count
				case "TAP_BACK":
					rec.TapsBack = count
				case "TAP_EXIT":
					rec.TapsExit = count
				case "SWIPE_FORWARD":
					rec.SwipeForward = count
				}
				// Unrecognized action types still count toward the total.
				rec.NavigationTotal += count
			}
		}
	}
}

func (g *GraphImpl) fetchAggregates(ctx context.Context, creds instagram.Credentials, storyID string, rec *domain.MetricsRecord) {
	q := url.Values{}
	q.Set("access_token", creds.AccessToken)
	q.Set("metric", aggregateMetrics)
	endpoint := fmt.Sprintf("%s/%s/insights?%s", g.baseURL, storyID, q.Encode())

	var resp insightsResponse
	if err := g.getJSON(ctx, creds.Account, endpoint, &resp); err != nil {
		g.logger.Warn("Error fetching aggregate story metrics, defaulting to zero", "story_id", storyID, "error", err)
		return
	}

	for _, metric := range resp.Data {
		if len(metric.Values) == 0 {
			continue
		}
		count := metric.Values[0].Value.Scalar

		switch metric.Name {
		case "views":
			rec.Views = count
		case "reach":
			rec.Reach = count
		case "replies":
			rec.Replies = count
		case "shares":
			rec.Shares = count
		case "total_interactions":
			rec.TotalInteractions = count
		case "profile_visits":
			rec.ProfileVisits = count
		case "follows":
			rec.Follows = count
		}
	}
}
