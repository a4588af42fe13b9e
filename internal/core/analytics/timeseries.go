package analytics

import (
	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
)

// MonthlyCounts buckets records into calendar-month labels and counts
// occurrences per bucket. The axis order of the result follows the
// first-seen order of buckets among the records, matching how the
// dashboard appends new months as they appear.
func MonthlyCounts(records []*v1.FulfillmentRecord, label MonthLabeler) TimeSeries {
	if label == nil {
		label = YearMonth
	}

	counts := make(map[string]int64, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		month := label(rec.CreatedAt)
		if _, seen := counts[month]; !seen {
			order = append(order, month)
		}
		counts[month]++
	}

	series := make(TimeSeries, 0, len(order))
	for _, month := range order {
		series = append(series, TimePoint{Month: month, Count: counts[month]})
	}
	return series
}

// MonthAxis returns just the ordered month labels of a time series. The
// matrix aggregator reuses this axis instead of recomputing it, which
// guarantees identical axis ordering across projections.
func (ts TimeSeries) MonthAxis() []string {
	axis := make([]string, 0, len(ts))
	for _, pt := range ts {
		axis = append(axis, pt.Month)
	}
	return axis
}
