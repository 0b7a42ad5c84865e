package present_test

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/collision-explorer/internal/domain"
	"github.com/couchcryptid/collision-explorer/internal/present"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func record(id, borough string, killed int) domain.CollisionRecord {
	return domain.CollisionRecord{
		CollisionID: id,
		CrashDate:   "01/01/2024",
		CrashTime:   "8:15",
		Borough:     borough,
		Geo:         &domain.Geo{Lat: 40.7, Lon: -73.9},
		Casualties: domain.Casualties{
			PersonsInjured: intPtr(1),
			PersonsKilled:  intPtr(killed),
		},
		Factors: [5]string{"Unsafe Speed"},
	}
}

func manyRecords(n int, borough string) []domain.CollisionRecord {
	out := make([]domain.CollisionRecord, n)
	for i := range out {
		out[i] = record(strings.Repeat("x", i%3+1), borough, 0)
	}
	return out
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestFilterBorough(t *testing.T) {
	records := []domain.CollisionRecord{
		record("1", "BRONX", 0),
		record("2", "QUEENS", 0),
		record("3", "", 0),
	}

	tests := []struct {
		name    string
		borough string
		wantIDs []string
	}{
		{"all", domain.AllBoroughs, []string{"1", "2", "3"}},
		{"empty selection", "", []string{"1", "2", "3"}},
		{"one borough", "QUEENS", []string{"2"}},
		{"unknown borough", "ATLANTIS", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, r := range present.FilterBorough(records, tt.borough) {
				ids = append(ids, r.CollisionID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSample_CapsAtN(t *testing.T) {
	records := manyRecords(2500, "BRONX")
	got := present.Sample(records, present.DefaultMarkerSample, testRand())
	assert.Len(t, got, present.DefaultMarkerSample)
}

func TestSample_SmallerThanN(t *testing.T) {
	records := manyRecords(5, "BRONX")
	got := present.Sample(records, present.DefaultMarkerSample, testRand())
	assert.ElementsMatch(t, records, got)
}

func TestSample_Distinct(t *testing.T) {
	records := make([]domain.CollisionRecord, 50)
	for i := range records {
		records[i] = record(string(rune('A'+i)), "BRONX", 0)
	}
	got := present.Sample(records, 20, testRand())
	seen := make(map[string]bool)
	for _, r := range got {
		assert.False(t, seen[r.CollisionID], "duplicate %s", r.CollisionID)
		seen[r.CollisionID] = true
	}
	assert.Len(t, seen, 20)
}

func TestSample_DoesNotModifyInput(t *testing.T) {
	records := []domain.CollisionRecord{record("1", "A", 0), record("2", "A", 0), record("3", "A", 0)}
	present.Sample(records, 2, testRand())
	assert.Equal(t, "1", records[0].CollisionID)
	assert.Equal(t, "2", records[1].CollisionID)
	assert.Equal(t, "3", records[2].CollisionID)
}

func TestSample_Empty(t *testing.T) {
	assert.Empty(t, present.Sample(nil, 10, testRand()))
}

func TestNewSampleRand_FrozenClockIsReproducible(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	records := make([]domain.CollisionRecord, 100)
	for i := range records {
		records[i] = record(string(rune('A'+i)), "BRONX", 0)
	}
	first := present.Sample(records, 10, present.NewSampleRand())
	second := present.Sample(records, 10, present.NewSampleRand())
	assert.Equal(t, first, second)
}

func TestSampleMarkers_FiltersAndCaps(t *testing.T) {
	records := append(manyRecords(1200, "BRONX"), manyRecords(30, "QUEENS")...)

	all := present.SampleMarkers(records, domain.AllBoroughs, present.DefaultMarkerSample, testRand())
	assert.Len(t, all, present.DefaultMarkerSample)

	queens := present.SampleMarkers(records, "QUEENS", present.DefaultMarkerSample, testRand())
	assert.Len(t, queens, 30)
}

func TestSampleMarkers_NoMatchesIsEmptyNotNil(t *testing.T) {
	got := present.SampleMarkers(manyRecords(3, "BRONX"), "QUEENS", 10, testRand())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewMarker_Color(t *testing.T) {
	fatal, ok := present.NewMarker(record("1", "BRONX", 1))
	require.True(t, ok)
	assert.Equal(t, present.ColorFatal, fatal.Color)

	nonFatal, ok := present.NewMarker(record("2", "BRONX", 0))
	require.True(t, ok)
	assert.Equal(t, present.ColorNonFatal, nonFatal.Color)

	missing := record("3", "BRONX", 0)
	missing.Casualties.PersonsKilled = nil
	m, ok := present.NewMarker(missing)
	require.True(t, ok)
	assert.Equal(t, present.ColorNonFatal, m.Color)
}

func TestNewMarker_NoGeo(t *testing.T) {
	rec := record("1", "BRONX", 0)
	rec.Geo = nil
	_, ok := present.NewMarker(rec)
	assert.False(t, ok)
}

func TestPopupHTML(t *testing.T) {
	rec := record("1", "BRONX", 2)
	got := present.PopupHTML(rec)

	assert.Contains(t, got, "<b>Date:</b> 01/01/2024<br>")
	assert.Contains(t, got, "<b>Time:</b> 8:15<br>")
	assert.Contains(t, got, "<b>Borough:</b> BRONX<br>")
	assert.Contains(t, got, "<b>Injuries:</b> 1<br>")
	assert.Contains(t, got, "<b>Fatalities:</b> 2<br>")
	assert.Contains(t, got, "<b>Contributing Factor:</b> Unsafe Speed")
}

func TestPopupHTML_EscapesValues(t *testing.T) {
	rec := record("1", "<script>alert(1)</script>", 0)
	got := present.PopupHTML(rec)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestHeatPoints(t *testing.T) {
	noGeo := record("2", "BRONX", 0)
	noGeo.Geo = nil
	got := present.HeatPoints([]domain.CollisionRecord{record("1", "BRONX", 0), noGeo})
	assert.Equal(t, [][2]float64{{40.7, -73.9}}, got)
}
