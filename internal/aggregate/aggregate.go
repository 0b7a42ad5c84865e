// Package aggregate computes the small summary tables behind every chart,
// JSON endpoint, and export. All functions are pure over a derived record slice.
//
// Missing grouping keys form their own group (domain.MissingCategory).
// Time-keyed tables skip records whose timestamp did not parse.
package aggregate

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/collision-explorer/internal/domain"
)

// Default ranking sizes of the dashboard views.
const (
	TopFactorsN  = 20
	TopVehiclesN = 10
)

// GroupBy partitions records by key. Records for which key reports false are
// skipped; callers use this only to exclude invalid timestamps.
func GroupBy[K comparable](records []domain.CollisionRecord, key func(domain.CollisionRecord) (K, bool)) map[K][]domain.CollisionRecord {
	groups := make(map[K][]domain.CollisionRecord)
	for _, rec := range records {
		k, ok := key(rec)
		if !ok {
			continue
		}
		groups[k] = append(groups[k], rec)
	}
	return groups
}

// Summarize groups records by key and reduces each group with agg.
func Summarize[K comparable, V any](records []domain.CollisionRecord, key func(domain.CollisionRecord) (K, bool), agg func([]domain.CollisionRecord) V) map[K]V {
	groups := GroupBy(records, key)
	out := make(map[K]V, len(groups))
	for k, g := range groups {
		out[k] = agg(g)
	}
	return out
}

// Count is one row of a frequency table.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Frequency counts occurrences of each value, labelling "" as
// domain.MissingCategory. Values in exclude are dropped. The result is sorted
// by descending count, ties by value.
func Frequency(values []string, exclude ...string) []Count {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			v = domain.MissingCategory
		}
		counts[v]++
	}
	for _, ex := range exclude {
		delete(counts, ex)
	}

	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// TopN truncates a sorted frequency table to at most n entries.
func TopN(counts []Count, n int) []Count {
	if n < 0 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}

// slotValues flattens per-vehicle slots. The first slot describes the
// primary vehicle that every collision has, so a blank there counts as
// missing; blank later slots mean no such vehicle and are not observations.
func slotValues(records []domain.CollisionRecord, slots func(domain.CollisionRecord) []string) []string {
	values := make([]string, 0, len(records))
	for _, rec := range records {
		for i, v := range slots(rec) {
			if i > 0 && v == "" {
				continue
			}
			values = append(values, v)
		}
	}
	return values
}

// TopFactors ranks contributing factors over all five vehicle slots,
// excluding the literal "Unspecified".
func TopFactors(records []domain.CollisionRecord, n int) []Count {
	values := slotValues(records, func(r domain.CollisionRecord) []string { return r.Factors[:] })
	return TopN(Frequency(values, domain.Unspecified), n)
}

// TopVehicleTypes ranks vehicle types over the first two vehicle slots.
func TopVehicleTypes(records []domain.CollisionRecord, n int) []Count {
	values := slotValues(records, func(r domain.CollisionRecord) []string { return r.VehicleTypes[:] })
	return TopN(Frequency(values), n)
}

// BoroughChoices returns the distinct non-missing boroughs, sorted.
func BoroughChoices(records []domain.CollisionRecord) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, rec := range records {
		if rec.Borough == "" || seen[rec.Borough] {
			continue
		}
		seen[rec.Borough] = true
		out = append(out, rec.Borough)
	}
	slices.Sort(out)
	return out
}
