package analytics

import (
	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
)

// Builder orchestrates the aggregators into the dashboard projection set.
// It is stateless between invocations: Build is a pure function of the
// record snapshot passed to it, so a snapshot must not be mutated while a
// build is in flight.
type Builder struct {
	panels []RankedPanel
	label  MonthLabeler
	colors ColorAssigner
}

// NewBuilder creates a projection builder. Nil arguments select the
// defaults: the built-in panels, year-qualified month buckets, and
// deterministic hash colors.
func NewBuilder(panels []RankedPanel, label MonthLabeler, colors ColorAssigner) *Builder {
	if len(panels) == 0 {
		panels = DefaultPanels()
	}
	if label == nil {
		label = YearMonth
	}
	if colors == nil {
		colors = HashColors{}
	}
	return &Builder{panels: panels, label: label, colors: colors}
}

// Build filters the snapshot and computes all projections from scratch.
// It never fails: an empty or nil snapshot yields well-formed empty
// projections. Panels named top_items and top_customers feed the canonical
// dashboard slots; any additional panels are returned under Extras.
func (b *Builder) Build(records []*v1.FulfillmentRecord) DashboardProjections {
	fulfilled := FilterFulfilled(records)

	overTime := MonthlyCounts(fulfilled, b.label)
	matrix := MonthlyMatrix(fulfilled, overTime.MonthAxis(), KeyItem, b.label, b.colors)

	projections := DashboardProjections{
		TopItems:             RankedSeries{},
		TopCustomers:         RankedSeries{},
		FulfillmentsOverTime: overTime,
		ItemMonthlyMatrix:    matrix,
	}

	for _, panel := range b.panels {
		series := panel.Rank(fulfilled)
		switch panel.Name {
		case PanelTopItems:
			projections.TopItems = series
		case PanelTopCustomers:
			projections.TopCustomers = series
		default:
			if projections.Extras == nil {
				projections.Extras = make(map[string]RankedSeries, 1)
			}
			projections.Extras[panel.Name] = series
		}
	}

	return projections
}
