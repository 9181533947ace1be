package exporterimpl

import (
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
)

// Story metrics expire this long after publish, so the eligible window is
// always exactly the trailing day.
const metricsWindow = 24 * time.Hour

// EligibleWindow returns the date range, as midnights in the reporting
// timezone, for which story metrics are still retrievable at now.
func EligibleWindow(now time.Time) (since, until time.Time) {
	loc := domain.ReportingZone()
	until = domain.DateIn(now, loc)
	since = domain.DateIn(now.Add(-metricsWindow), loc)
	return since, until
}
