package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// RankedEntry is one (label, value) pair of a ranked projection.
type RankedEntry struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// RankedSeries is an ordered top-N projection, descending by value.
// Ties retain first-seen order of the underlying records.
type RankedSeries []RankedEntry

// TimePoint is one (monthLabel, count) pair of a time series.
type TimePoint struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// TimeSeries is a monthly count projection. Axis order follows the
// first-seen order of month buckets among the records, not calendar order.
type TimeSeries []TimePoint

// MatrixSeries is one named count series of a multi-series matrix,
// positionally aligned to the shared month axis.
type MatrixSeries struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Counts []int64 `json:"counts"`
}

// MultiSeriesMatrix is a shared ordered month axis plus one count series
// per distinct primary key. Every series has len(Counts) == len(Months).
type MultiSeriesMatrix struct {
	Months []string       `json:"months"`
	Series []MatrixSeries `json:"series"`
}

// DashboardProjections is the full chart-ready projection set rebuilt from
// scratch on every refresh. Empty input yields empty (non-nil) projections.
type DashboardProjections struct {
	TopItems             RankedSeries      `json:"top_items"`
	TopCustomers         RankedSeries      `json:"top_customers"`
	FulfillmentsOverTime TimeSeries        `json:"fulfillments_over_time"`
	ItemMonthlyMatrix    MultiSeriesMatrix `json:"item_monthly_matrix"`

	// Extras holds ranked series of operator-defined panels beyond the two
	// canonical slots. Nil when only the built-in panels are configured.
	Extras map[string]RankedSeries `json:"extras,omitempty"`
}

// MonthLabeler maps a record timestamp to its month bucket label.
type MonthLabeler func(t time.Time) string

// MonthOnly labels buckets with the short calendar-month name ("Jan").
// Records from different years collapse into the same bucket; kept for
// parity with dashboards that render a rolling twelve-month view.
func MonthOnly(t time.Time) string {
	return t.Format("Jan")
}

// YearMonth labels buckets with the short month name and year ("Jan 2026")
// so cross-year records never collapse. This is the default.
func YearMonth(t time.Time) string {
	return t.Format("Jan 2006")
}
