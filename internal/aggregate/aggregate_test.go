package aggregate_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/collision-explorer/internal/adapter/csvfile"
	"github.com/couchcryptid/collision-explorer/internal/aggregate"
	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureRecords(t *testing.T) []domain.CollisionRecord {
	t.Helper()
	table, err := csvfile.NewLoader(filepath.Join("..", "..", "data", "mock", "collisions_sample.csv")).Load(context.Background())
	require.NoError(t, err)
	records := domain.Derive(domain.Clean(domain.ParseRecords(table)))
	require.Len(t, records, 8)
	return records
}

func intPtr(n int) *int { return &n }

func TestFrequency(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		exclude []string
		want    []aggregate.Count
	}{
		{
			name:   "sorted by count then value",
			values: []string{"b", "a", "b", "c", "a", "b"},
			want:   []aggregate.Count{{"b", 3}, {"a", 2}, {"c", 1}},
		},
		{
			name:   "blank is missing",
			values: []string{"", "a", ""},
			want:   []aggregate.Count{{domain.MissingCategory, 2}, {"a", 1}},
		},
		{
			name:    "excluded values dropped",
			values:  []string{"Unspecified", "a", "Unspecified"},
			exclude: []string{"Unspecified"},
			want:    []aggregate.Count{{"a", 1}},
		},
		{
			name:   "empty",
			values: nil,
			want:   []aggregate.Count{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.Frequency(tt.values, tt.exclude...))
		})
	}
}

func TestTopN(t *testing.T) {
	counts := []aggregate.Count{{"a", 3}, {"b", 2}, {"c", 1}}
	assert.Len(t, aggregate.TopN(counts, 2), 2)
	assert.Len(t, aggregate.TopN(counts, 10), 3)
	assert.Empty(t, aggregate.TopN(counts, 0))
}

func TestTopFactors_Fixture(t *testing.T) {
	got := aggregate.TopFactors(fixtureRecords(t), aggregate.TopFactorsN)
	want := []aggregate.Count{
		{"Driver Inattention/Distraction", 4},
		{"Unsafe Speed", 3},
		{"Failure to Yield Right-of-Way", 1},
		{"Following Too Closely", 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopFactors mismatch (-want +got):\n%s", diff)
	}
}

func TestTopFactors_ExcludesUnspecified(t *testing.T) {
	records := []domain.CollisionRecord{
		{Factors: [5]string{domain.Unspecified, domain.Unspecified}},
		{Factors: [5]string{"Unsafe Speed"}},
	}
	got := aggregate.TopFactors(records, aggregate.TopFactorsN)
	assert.Equal(t, []aggregate.Count{{"Unsafe Speed", 1}}, got)
}

func TestTopFactors_ExcludesThenTruncates(t *testing.T) {
	var records []domain.CollisionRecord
	add := func(factor string, n int) {
		for range n {
			records = append(records, domain.CollisionRecord{Factors: [5]string{factor}})
		}
	}
	add("A", 10)
	add(domain.Unspecified, 50)
	add("B", 5)

	got := aggregate.TopFactors(records, 2)
	assert.Equal(t, []aggregate.Count{{"A", 10}, {"B", 5}}, got)
}

func TestTopFactors_MissingPrimaryCounted(t *testing.T) {
	records := []domain.CollisionRecord{{}, {Factors: [5]string{"Unsafe Speed"}}}
	got := aggregate.TopFactors(records, aggregate.TopFactorsN)
	assert.ElementsMatch(t, []aggregate.Count{{domain.MissingCategory, 1}, {"Unsafe Speed", 1}}, got)
}

func TestTopVehicleTypes_Fixture(t *testing.T) {
	got := aggregate.TopVehicleTypes(fixtureRecords(t), aggregate.TopVehiclesN)
	want := []aggregate.Count{
		{"Sedan", 7},
		{"Taxi", 2},
		{"Bike", 1},
		{"Pick-up Truck", 1},
		{"Station Wagon/Sport Utility Vehicle", 1},
	}
	assert.Equal(t, want, got)
}

func TestTopVehicleTypes_CapsAtN(t *testing.T) {
	var records []domain.CollisionRecord
	for _, v := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		records = append(records, domain.CollisionRecord{VehicleTypes: [2]string{v}})
	}
	assert.Len(t, aggregate.TopVehicleTypes(records, aggregate.TopVehiclesN), 10)
}

func TestInjuriesAndFatalities_Fixture(t *testing.T) {
	records := fixtureRecords(t)

	assert.Equal(t, []aggregate.CategoryTotal{
		{Category: "Pedestrians", Total: 1},
		{Category: "Cyclists", Total: 3},
		{Category: "Motorists", Total: 4},
	}, aggregate.InjuriesByUserGroup(records))

	assert.Equal(t, []aggregate.CategoryTotal{
		{Category: "Pedestrians", Total: 1},
		{Category: "Cyclists", Total: 0},
		{Category: "Motorists", Total: 0},
	}, aggregate.FatalitiesByUserGroup(records))
}

func TestInjuries_MissingCountsAsZero(t *testing.T) {
	records := []domain.CollisionRecord{
		{Casualties: domain.Casualties{PedestriansInjured: intPtr(2)}},
		{},
	}
	got := aggregate.InjuriesByUserGroup(records)
	assert.Equal(t, 2, got[0].Total)
	assert.Equal(t, 0, got[1].Total)
}

func TestBoroughs_Fixture(t *testing.T) {
	got := aggregate.Boroughs(fixtureRecords(t))
	want := []aggregate.BoroughSummary{
		{Borough: domain.MissingCategory, Collisions: 1, Injured: 0, Killed: 0},
		{Borough: "BRONX", Collisions: 1, Injured: 1, Killed: 0},
		{Borough: "BROOKLYN", Collisions: 2, Injured: 2, Killed: 0},
		{Borough: "MANHATTAN", Collisions: 1, Injured: 3, Killed: 0},
		{Borough: "QUEENS", Collisions: 2, Injured: 2, Killed: 1},
		{Borough: "STATEN ISLAND", Collisions: 1, Injured: 0, Killed: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Boroughs mismatch (-want +got):\n%s", diff)
	}
}

func TestBoroughChoices_Fixture(t *testing.T) {
	assert.Equal(t,
		[]string{"BRONX", "BROOKLYN", "MANHATTAN", "QUEENS", "STATEN ISLAND"},
		aggregate.BoroughChoices(fixtureRecords(t)))
}

func TestBoroughChoices_Empty(t *testing.T) {
	assert.Empty(t, aggregate.BoroughChoices(nil))
}

func TestDaily_Fixture(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	want := []aggregate.DailyCount{
		{Day: day(1), Collisions: 2},
		{Day: day(2), Collisions: 2},
		{Day: day(3), Collisions: 1},
		{Day: day(6), Collisions: 1},
		{Day: day(7), Collisions: 1},
	}
	assert.Equal(t, want, aggregate.Daily(fixtureRecords(t)))
}

func TestDayHour_Fixture(t *testing.T) {
	want := []aggregate.DayHourCount{
		{DayOfWeek: "Monday", Hour: 8, Collisions: 1},
		{DayOfWeek: "Monday", Hour: 17, Collisions: 1},
		{DayOfWeek: "Tuesday", Hour: 2, Collisions: 1},
		{DayOfWeek: "Tuesday", Hour: 23, Collisions: 1},
		{DayOfWeek: "Wednesday", Hour: 12, Collisions: 1},
		{DayOfWeek: "Saturday", Hour: 7, Collisions: 1},
		{DayOfWeek: "Sunday", Hour: 19, Collisions: 1},
	}
	assert.Equal(t, want, aggregate.DayHour(fixtureRecords(t)))
}

func TestDayHour_SkipsUnknownWeekday(t *testing.T) {
	records := []domain.CollisionRecord{
		{Hour: intPtr(8), DayOfWeek: ""},
		{Hour: intPtr(9), DayOfWeek: "Funday"},
		{Hour: intPtr(10), DayOfWeek: "Friday"},
	}

	var got []aggregate.DayHourCount
	require.NotPanics(t, func() { got = aggregate.DayHour(records) })
	assert.Equal(t, []aggregate.DayHourCount{{DayOfWeek: "Friday", Hour: 10, Collisions: 1}}, got)
}

func TestHourlyByBorough_Fixture(t *testing.T) {
	got := aggregate.HourlyByBorough(fixtureRecords(t))
	require.Len(t, got, 7)
	assert.Equal(t, aggregate.HourBoroughCount{Hour: 23, Borough: domain.MissingCategory, Collisions: 1}, got[0])
	for _, c := range got {
		assert.NotEqual(t, "BRONX", c.Borough, "invalid timestamp row must not appear")
	}
}

func TestMeanSeverityByDay_Fixture(t *testing.T) {
	want := []aggregate.DaySeverity{
		{DayOfWeek: "Monday", MeanSeverity: 2, Collisions: 2},
		{DayOfWeek: "Tuesday", MeanSeverity: 1.5, Collisions: 2},
		{DayOfWeek: "Wednesday", MeanSeverity: 0, Collisions: 1},
		{DayOfWeek: "Saturday", MeanSeverity: 0, Collisions: 1},
		{DayOfWeek: "Sunday", MeanSeverity: 1, Collisions: 1},
	}
	assert.Equal(t, want, aggregate.MeanSeverityByDay(fixtureRecords(t)))
}

func TestSummarizeAll_Table(t *testing.T) {
	s := aggregate.SummarizeAll(fixtureRecords(t))

	for _, name := range aggregate.TableNames {
		t.Run(name, func(t *testing.T) {
			v, ok := s.Table(name)
			require.True(t, ok)
			assert.NotNil(t, v)
		})
	}

	_, ok := s.Table("nope")
	assert.False(t, ok)
}

func TestSummarizeAll_Empty(t *testing.T) {
	s := aggregate.SummarizeAll(nil)
	assert.Empty(t, s.Factors)
	assert.Empty(t, s.Daily)
	assert.Len(t, s.Injuries, 3)
}
