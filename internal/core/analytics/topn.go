package analytics

import (
	"sort"

	v1 "github.com/pulseboard-lab/pulseboard/internal/api/v1"
	"github.com/shopspring/decimal"
)

// DefaultRankLimit is the ranked-series truncation applied when a panel
// does not configure its own limit.
const DefaultRankLimit = 10

// KeyFunc extracts the grouping key of a ranked projection from a record.
type KeyFunc func(*v1.FulfillmentRecord) string

// MeasureFunc extracts the numeric measure summed per key.
type MeasureFunc func(*v1.FulfillmentRecord) decimal.Decimal

// KeyItem groups by fulfilled catalog item.
func KeyItem(r *v1.FulfillmentRecord) string { return r.ItemName }

// KeyCustomer groups by requesting customer.
func KeyCustomer(r *v1.FulfillmentRecord) string { return r.CustomerName }

// MeasureQuantity sums fulfilled units.
func MeasureQuantity(r *v1.FulfillmentRecord) decimal.Decimal {
	return decimal.NewFromInt(r.Quantity)
}

// MeasureCount counts records.
func MeasureCount(_ *v1.FulfillmentRecord) decimal.Decimal {
	return decimal.NewFromInt(1)
}

// TopN groups records by key, sums the measure per key, and returns the
// highest-valued entries in descending order, truncated to limit.
//
// The sort is stable over first-seen key order: equal sums rank in the
// order their keys first appear in the input. Fewer than limit distinct
// keys returns all of them, no padding.
func TopN(records []*v1.FulfillmentRecord, key KeyFunc, measure MeasureFunc, limit int) RankedSeries {
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	sums := make(map[string]decimal.Decimal, len(records))
	order := make([]string, 0, len(records))

	for _, rec := range records {
		k := key(rec)
		current, seen := sums[k]
		if !seen {
			order = append(order, k)
			current = decimal.Zero
		}
		sums[k] = current.Add(measure(rec))
	}

	entries := make(RankedSeries, 0, len(order))
	for _, k := range order {
		entries = append(entries, RankedEntry{Label: k, Value: sums[k]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value.GreaterThan(entries[j].Value)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
