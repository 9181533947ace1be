package domain

// MetricsRecord holds the engagement counters for a single story. Every field
// is always populated: a failed or partial upstream fetch leaves the affected
// counters at zero rather than missing.
type MetricsRecord struct {
	Views             int64
	Reach             int64
	Replies           int64
	Shares            int64
	TotalInteractions int64
	ProfileVisits     int64
	Follows           int64

	NavigationTotal int64
	TapsForward     int64
	TapsBack        int64
	TapsExit        int64
	SwipeForward    int64
}
