package analytics

import (
	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
)

// MonthlyMatrix produces one count series per distinct primary key, each
// positionally aligned to the shared month axis. Months with no activity
// for a key default to zero. Every distinct key appears; no top-N
// truncation is applied here.
//
// months must be the axis computed by MonthlyCounts over the same record
// snapshot with the same labeler. A record whose month is missing from the
// axis is not counted; with a shared snapshot that cannot happen.
func MonthlyMatrix(records []*v1.FulfillmentRecord, months []string, key KeyFunc, label MonthLabeler, colors ColorAssigner) MultiSeriesMatrix {
	if label == nil {
		label = YearMonth
	}
	if colors == nil {
		colors = HashColors{}
	}

	axisIndex := make(map[string]int, len(months))
	for i, m := range months {
		axisIndex[m] = i
	}

	counts := make(map[string][]int64)
	order := make([]string, 0)

	for _, rec := range records {
		idx, ok := axisIndex[label(rec.CreatedAt)]
		if !ok {
			continue
		}

		k := key(rec)
		row, seen := counts[k]
		if !seen {
			row = make([]int64, len(months))
			counts[k] = row
			order = append(order, k)
		}
		row[idx]++
	}

	matrix := MultiSeriesMatrix{
		Months: append([]string(nil), months...),
		Series: make([]MatrixSeries, 0, len(order)),
	}
	for _, k := range order {
		matrix.Series = append(matrix.Series, MatrixSeries{
			Name:   k,
			Color:  colors.ColorFor(k),
			Counts: counts[k],
		})
	}
	return matrix
}
