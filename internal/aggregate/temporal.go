package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/couchcryptid/collision-explorer/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// DailyCount is one point of the daily collision series.
type DailyCount struct {
	Day        time.Time `json:"day"`
	Collisions int       `json:"collisions"`
}

// Daily counts collisions per calendar day in date order. Days without a
// collision are omitted rather than filled with zero.
func Daily(records []domain.CollisionRecord) []DailyCount {
	counts := Summarize(records, dayKey, func(g []domain.CollisionRecord) int { return len(g) })

	out := make([]DailyCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DailyCount{Day: day, Collisions: n})
	}
	slices.SortFunc(out, func(a, b DailyCount) int { return a.Day.Compare(b.Day) })
	return out
}

func dayKey(r domain.CollisionRecord) (time.Time, bool) {
	if !r.HasTimestamp() {
		return time.Time{}, false
	}
	t := r.CrashDateTime
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
}

// DayHourCount is one cell of the weekday by hour matrix.
type DayHourCount struct {
	DayOfWeek  string `json:"day_of_week"`
	Hour       int    `json:"hour"`
	Collisions int    `json:"collisions"`
}

type dayHour struct {
	day  int
	hour int
}

// DayHour counts collisions per (weekday, hour), ordered Monday..Sunday
// then by hour. Empty cells are omitted.
func DayHour(records []domain.CollisionRecord) []DayHourCount {
	counts := Summarize(records, func(r domain.CollisionRecord) (dayHour, bool) {
		if r.Hour == nil {
			return dayHour{}, false
		}
		day := domain.WeekdayIndex(r.DayOfWeek)
		if day < 0 {
			return dayHour{}, false
		}
		return dayHour{day: day, hour: *r.Hour}, true
	}, func(g []domain.CollisionRecord) int { return len(g) })

	keys := make([]dayHour, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b dayHour) int {
		if c := cmp.Compare(a.day, b.day); c != 0 {
			return c
		}
		return cmp.Compare(a.hour, b.hour)
	})

	out := make([]DayHourCount, len(keys))
	for i, k := range keys {
		out[i] = DayHourCount{DayOfWeek: domain.Weekdays[k.day], Hour: k.hour, Collisions: counts[k]}
	}
	return out
}

// HourBoroughCount is one point of the hourly-by-borough trend.
type HourBoroughCount struct {
	Hour       int    `json:"hour"`
	Borough    string `json:"borough"`
	Collisions int    `json:"collisions"`
}

type hourBorough struct {
	hour    int
	borough string
}

// HourlyByBorough counts collisions per (hour, borough), with missing
// boroughs grouped under domain.MissingCategory. Sorted by borough then hour.
func HourlyByBorough(records []domain.CollisionRecord) []HourBoroughCount {
	counts := Summarize(records, func(r domain.CollisionRecord) (hourBorough, bool) {
		if r.Hour == nil {
			return hourBorough{}, false
		}
		return hourBorough{hour: *r.Hour, borough: r.BoroughOrMissing()}, true
	}, func(g []domain.CollisionRecord) int { return len(g) })

	out := make([]HourBoroughCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, HourBoroughCount{Hour: k.hour, Borough: k.borough, Collisions: n})
	}
	slices.SortFunc(out, func(a, b HourBoroughCount) int {
		if c := cmp.Compare(a.Borough, b.Borough); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	return out
}

// DaySeverity is the mean severity of one weekday.
type DaySeverity struct {
	DayOfWeek    string  `json:"day_of_week"`
	MeanSeverity float64 `json:"mean_severity"`
	Collisions   int     `json:"collisions"`
}

// MeanSeverityByDay averages severity per weekday, ordered Monday..Sunday.
// Weekdays without any collision are omitted.
func MeanSeverityByDay(records []domain.CollisionRecord) []DaySeverity {
	groups := GroupBy(records, func(r domain.CollisionRecord) (string, bool) {
		return r.DayOfWeek, r.HasTimestamp()
	})

	out := make([]DaySeverity, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		g, ok := groups[day]
		if !ok {
			continue
		}
		out = append(out, DaySeverity{DayOfWeek: day, MeanSeverity: stat.Mean(Severities(g), nil), Collisions: len(g)})
	}
	return out
}

// Severities extracts the severity column.
func Severities(records []domain.CollisionRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Severity
	}
	return out
}
