package domain

import (
	"sync"
	"time"
)

var (
	reportingOnce sync.Once
	reportingLoc  *time.Location
)

// ReportingZone returns the timezone all story dates and eligibility windows
// are computed in. The upstream accounts report in US Pacific time.
func ReportingZone() *time.Location {
	reportingOnce.Do(func() {
		loc, err := time.LoadLocation("America/Los_Angeles")
		if err != nil {
			loc = time.Local
		}
		reportingLoc = loc
	})
	return reportingLoc
}

// DateIn truncates t to midnight of its calendar date in loc.
func DateIn(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
