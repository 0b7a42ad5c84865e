package aggregate

import (
	"cmp"
	"slices"

	"github.com/couchcryptid/collision-explorer/internal/domain"
)

// Column is a named numeric column of a collision record.
type Column struct {
	Name  string
	Value func(domain.CollisionRecord) int
}

func countColumn(name string, get func(domain.Casualties) *int) Column {
	return Column{Name: name, Value: func(r domain.CollisionRecord) int {
		return domain.CountOrZero(get(r.Casualties))
	}}
}

// User-group injury and fatality columns.
var (
	InjuryColumns = []Column{
		countColumn("Pedestrians", func(c domain.Casualties) *int { return c.PedestriansInjured }),
		countColumn("Cyclists", func(c domain.Casualties) *int { return c.CyclistsInjured }),
		countColumn("Motorists", func(c domain.Casualties) *int { return c.MotoristsInjured }),
	}
	FatalityColumns = []Column{
		countColumn("Pedestrians", func(c domain.Casualties) *int { return c.PedestriansKilled }),
		countColumn("Cyclists", func(c domain.Casualties) *int { return c.CyclistsKilled }),
		countColumn("Motorists", func(c domain.Casualties) *int { return c.MotoristsKilled }),
	}
	personsInjured = countColumn("Injured", func(c domain.Casualties) *int { return c.PersonsInjured })
	personsKilled  = countColumn("Killed", func(c domain.Casualties) *int { return c.PersonsKilled })
)

// CategoryTotal is the sum of one column.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

// SumColumns totals each column over all records, in column order.
func SumColumns(records []domain.CollisionRecord, columns []Column) []CategoryTotal {
	out := make([]CategoryTotal, len(columns))
	for i, col := range columns {
		out[i].Category = col.Name
		for _, rec := range records {
			out[i].Total += col.Value(rec)
		}
	}
	return out
}

// InjuriesByUserGroup sums pedestrian, cyclist, and motorist injuries.
func InjuriesByUserGroup(records []domain.CollisionRecord) []CategoryTotal {
	return SumColumns(records, InjuryColumns)
}

// FatalitiesByUserGroup sums pedestrian, cyclist, and motorist deaths.
func FatalitiesByUserGroup(records []domain.CollisionRecord) []CategoryTotal {
	return SumColumns(records, FatalityColumns)
}

// SumBy groups records by key and totals each column per group. The result
// maps group key to totals in column order.
func SumBy[K comparable](records []domain.CollisionRecord, key func(domain.CollisionRecord) (K, bool), columns []Column) map[K][]int {
	return Summarize(records, key, func(group []domain.CollisionRecord) []int {
		totals := make([]int, len(columns))
		for _, rec := range group {
			for i, col := range columns {
				totals[i] += col.Value(rec)
			}
		}
		return totals
	})
}

// BoroughSummary is one bubble of the borough chart.
type BoroughSummary struct {
	Borough    string `json:"borough"`
	Collisions int    `json:"collisions"`
	Injured    int    `json:"injured"`
	Killed     int    `json:"killed"`
}

// Boroughs counts collisions and sums persons injured and killed per borough,
// with a domain.MissingCategory bucket for rows without one. Sorted by borough.
func Boroughs(records []domain.CollisionRecord) []BoroughSummary {
	collisions := Column{Name: "Collisions", Value: func(domain.CollisionRecord) int { return 1 }}
	byBorough := SumBy(records, boroughKey, []Column{collisions, personsInjured, personsKilled})

	out := make([]BoroughSummary, 0, len(byBorough))
	for b, t := range byBorough {
		out = append(out, BoroughSummary{Borough: b, Collisions: t[0], Injured: t[1], Killed: t[2]})
	}
	slices.SortFunc(out, func(a, b BoroughSummary) int { return cmp.Compare(a.Borough, b.Borough) })
	return out
}

func boroughKey(r domain.CollisionRecord) (string, bool) {
	return r.BoroughOrMissing(), true
}
