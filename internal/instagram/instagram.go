package instagram

import (
	"context"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
)

// Credentials carry one account's Graph API access. Each pipeline run resolves
// its own set; the client itself holds no account state.
type Credentials struct {
	Account     string
	AccessToken string
	BusinessID  string
}

type Client interface {
	// VerifyTokenScopes reports whether the access token carries every
	// permission the insight endpoints require. A failed check (including a
	// failed call) is a boolean result, not an error.
	VerifyTokenScopes(ctx context.Context, creds Credentials) bool

	// FetchStories pages through the account's story listing and returns the
	// stories whose date falls within [since, until], both midnights in the
	// reporting timezone. The listing is documented by the upstream as
	// strictly date-descending; FetchStories stops paging early once it sees
	// a story older than since, unless that ordering is observed to be
	// violated, in which case it falls back to a full scan.
	FetchStories(ctx context.Context, creds Credentials, since, until time.Time) ([]domain.Story, error)

	// FetchStoryMetrics returns the metrics record for one story. Each of the
	// two underlying metric groups degrades independently to zero values on
	// failure; this never fails a run.
	FetchStoryMetrics(ctx context.Context, creds Credentials, storyID string) domain.MetricsRecord
}
