package notifier

import "github.com/chapala/instagram-story-metrics/internal/domain"

// Client alerts an operator about export failures. Implementations must be
// best-effort: a notification failure never affects the run outcome.
type Client interface {
	NotifyBatchFailures(batch domain.BatchResult)
}
