package analysis

import (
	"fmt"

	"github.com/couchcryptid/collision-explorer/internal/aggregate"
	"github.com/couchcryptid/collision-explorer/internal/domain"
)

// Test names as printed by the stats command.
const (
	RushHourTestName  = "Time"
	DayOfWeekTestName = "Day"
)

// RushHourTest compares severity of collisions in rush hours against all
// other hours. Records without a timestamp are excluded.
func RushHourTest(records []domain.CollisionRecord) (Result, error) {
	groups := aggregate.GroupBy(records, func(r domain.CollisionRecord) (bool, bool) {
		if r.Hour == nil {
			return false, false
		}
		return domain.IsRushHour(*r.Hour), true
	})
	res, err := OneWayANOVA(aggregate.Severities(groups[true]), aggregate.Severities(groups[false]))
	res.Name = RushHourTestName
	if err != nil {
		return res, fmt.Errorf("rush hour test: %w", err)
	}
	return res, nil
}

// DayOfWeekTest compares severity across the seven weekdays. Records without
// a timestamp are excluded.
func DayOfWeekTest(records []domain.CollisionRecord) (Result, error) {
	groups := aggregate.GroupBy(records, func(r domain.CollisionRecord) (string, bool) {
		return r.DayOfWeek, r.HasTimestamp()
	})
	samples := make([][]float64, 0, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		samples = append(samples, aggregate.Severities(groups[day]))
	}
	res, err := OneWayANOVA(samples...)
	res.Name = DayOfWeekTestName
	if err != nil {
		return res, fmt.Errorf("day of week test: %w", err)
	}
	return res, nil
}

// RunAll runs both hypothesis tests in order. A test that lacks data yields
// its error alongside the partial result; the other test still runs.
func RunAll(records []domain.CollisionRecord) ([]Result, []error) {
	tests := []func([]domain.CollisionRecord) (Result, error){RushHourTest, DayOfWeekTest}
	results := make([]Result, len(tests))
	errs := make([]error, len(tests))
	for i, test := range tests {
		results[i], errs[i] = test(records)
	}
	return results, errs
}
