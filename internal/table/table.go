package table

import (
	"math"
	"time"

	"github.com/chapala/instagram-story-metrics/internal/domain"
)

// Row is one output record: story fields, engagement counters and derived
// rates. The derived rates are optional columns, absent when the story had no
// views. Column names match the downstream warehouse contract.
type Row struct {
	StoryID   string    `parquet:"story_id" json:"story_id"`
	StoryDate time.Time `parquet:"Story Date" json:"story_date"`
	Timestamp time.Time `parquet:"timestamp" json:"timestamp"`
	MediaType string    `parquet:"Media Type" json:"media_type"`
	Permalink string    `parquet:"permalink" json:"permalink"`
	MediaURL  string    `parquet:"media_url" json:"media_url"`

	Views             int64 `parquet:"Views" json:"views"`
	Reach             int64 `parquet:"Reach" json:"reach"`
	Replies           int64 `parquet:"Replies" json:"replies"`
	Shares            int64 `parquet:"Shares" json:"shares"`
	TotalInteractions int64 `parquet:"Total Interactions" json:"total_interactions"`
	ProfileVisits     int64 `parquet:"Profile Visits" json:"profile_visits"`
	Follows           int64 `parquet:"Follows" json:"follows"`

	NavigationTotal int64 `parquet:"Navigation Total" json:"navigation_total"`
	TapsForward     int64 `parquet:"Taps Forward" json:"taps_forward"`
	TapsBack        int64 `parquet:"Taps Back" json:"taps_back"`
	TapsExit        int64 `parquet:"Taps Exit" json:"taps_exit"`
	SwipeForward    int64 `parquet:"Swipe Forward" json:"swipe_forward"`

	ExitRate    *float64 `parquet:"Exit Rate,optional" json:"exit_rate"`
	ReplyRate   *float64 `parquet:"Reply Rate,optional" json:"reply_rate"`
	ForwardRate *float64 `parquet:"Forward Rate,optional" json:"forward_rate"`
	BackRate    *float64 `parquet:"Back Rate,optional" json:"back_rate"`

	MetricDate time.Time `parquet:"metric_date" json:"metric_date"`
}

// Table is an ordered set of rows sharing the fixed output schema. An empty
// table still carries the full schema when serialized.
type Table struct {
	Rows []Row
}

func (t *Table) Len() int      { return len(t.Rows) }
func (t *Table) IsEmpty() bool { return len(t.Rows) == 0 }

// MetricsLookup resolves a story ID to its metrics record.
type MetricsLookup func(storyID string) domain.MetricsRecord

// Build joins stories with their metrics into output rows. Story timestamps
// are localized to the reporting timezone and truncated for the story-date
// column; metric_date is now's midnight for every row of the run.
func Build(stories []domain.Story, metricsFor MetricsLookup, now time.Time) *Table {
	loc := domain.ReportingZone()
	metricDate := domain.DateIn(now, loc)

	rows := make([]Row, 0, len(stories))
	for _, story := range stories {
		m := metricsFor(story.ID)

		row := Row{
			StoryID:   story.ID,
			StoryDate: domain.DateIn(story.Timestamp, loc),
			Timestamp: story.Timestamp.In(loc),
			MediaType: "Story",
			Permalink: story.Permalink,
			MediaURL:  story.MediaURL,

			Views:             m.Views,
			Reach:             m.Reach,
			Replies:           m.Replies,
			Shares:            m.Shares,
			TotalInteractions: m.TotalInteractions,
			ProfileVisits:     m.ProfileVisits,
			Follows:           m.Follows,

			NavigationTotal: m.NavigationTotal,
			TapsForward:     m.TapsForward,
			TapsBack:        m.TapsBack,
			TapsExit:        m.TapsExit,
			SwipeForward:    m.SwipeForward,

			MetricDate: metricDate,
		}

		// Engagement rates are undefined for unviewed stories.
		if m.Views > 0 {
			row.ExitRate = rate(m.TapsExit, m.Views)
			row.ReplyRate = rate(m.Replies, m.Views)
			row.ForwardRate = rate(m.TapsForward+m.SwipeForward, m.Views)
			row.BackRate = rate(m.TapsBack, m.Views)
		}

		rows = append(rows, row)
	}

	return &Table{Rows: rows}
}

// rate returns n as a percentage of views, rounded to two decimal places.
func rate(n, views int64) *float64 {
	r := math.Round(float64(n)/float64(views)*100*100) / 100
	return &r
}
