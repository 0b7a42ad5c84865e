package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// crashDateTimeLayout matches "CRASH DATE" + " " + "CRASH TIME", e.g.
// "09/11/2021 2:39". Non-zero-padded month, day and hour also parse.
const crashDateTimeLayout = "1/2/2006 15:04"

// ParseRecord converts a raw row into a CollisionRecord. It never fails:
// blank or malformed cells become absent values.
func ParseRecord(raw RawRecord) CollisionRecord {
	rec := CollisionRecord{
		CollisionID: cellText(raw[ColCollisionID]),
		CrashDate:   cellText(raw[ColCrashDate]),
		CrashTime:   cellText(raw[ColCrashTime]),
		Borough:     cellText(raw[ColBorough]),
		Geo:         parseGeo(raw[ColLatitude], raw[ColLongitude]),
		Casualties: Casualties{
			PersonsInjured:     parseCount(raw[ColPersonsInjured]),
			PersonsKilled:      parseCount(raw[ColPersonsKilled]),
			PedestriansInjured: parseCount(raw[ColPedestriansInjured]),
			PedestriansKilled:  parseCount(raw[ColPedestriansKilled]),
			CyclistsInjured:    parseCount(raw[ColCyclistsInjured]),
			CyclistsKilled:     parseCount(raw[ColCyclistsKilled]),
			MotoristsInjured:   parseCount(raw[ColMotoristsInjured]),
			MotoristsKilled:    parseCount(raw[ColMotoristsKilled]),
		},
	}
	for i, col := range FactorColumns {
		rec.Factors[i] = cellText(raw[col])
	}
	for i, col := range VehicleTypeColumns {
		rec.VehicleTypes[i] = cellText(raw[col])
	}
	return rec
}

// ParseRecords applies ParseRecord to every row of a table.
func ParseRecords(table RawTable) []CollisionRecord {
	out := make([]CollisionRecord, 0, len(table.Rows))
	for _, raw := range table.Rows {
		out = append(out, ParseRecord(raw))
	}
	return out
}

// Clean keeps the records with both coordinates present and non-zero and
// stamps each survivor with its parsed CrashDateTime. The input is not modified.
func Clean(records []CollisionRecord) []CollisionRecord {
	out := make([]CollisionRecord, 0, len(records))
	for _, rec := range records {
		if !HasValidGeo(rec) {
			continue
		}
		rec.CrashDateTime, _ = ParseCrashDateTime(rec.CrashDate, rec.CrashTime)
		out = append(out, rec)
	}
	return out
}

// HasValidGeo reports whether a record has usable coordinates.
func HasValidGeo(rec CollisionRecord) bool {
	return rec.Geo != nil && rec.Geo.Lat != 0 && rec.Geo.Lon != 0
}

// ParseCrashDateTime joins the date and time text and parses the result.
// It returns the zero time and false when the text is not a valid timestamp.
func ParseCrashDateTime(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(crashDateTimeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Derive adds Hour, DayOfWeek and Severity to every record. The result
// depends only on source fields and CrashDateTime, so it is idempotent.
func Derive(records []CollisionRecord) []CollisionRecord {
	out := make([]CollisionRecord, len(records))
	for i, rec := range records {
		out[i] = DeriveRecord(rec)
	}
	return out
}

// DeriveRecord computes the derived fields of a single record.
func DeriveRecord(rec CollisionRecord) CollisionRecord {
	rec.Hour = nil
	rec.DayOfWeek = ""
	if rec.HasTimestamp() {
		h := rec.CrashDateTime.Hour()
		rec.Hour = &h
		rec.DayOfWeek = rec.CrashDateTime.Weekday().String()
	}
	rec.Severity = deriveSeverity(rec.Casualties)
	return rec
}

// deriveSeverity sums persons injured and killed, absent counts as zero.
func deriveSeverity(c Casualties) float64 {
	return float64(CountOrZero(c.PersonsInjured) + CountOrZero(c.PersonsKilled))
}

// cellText trims a cell and maps the tabular NA marker to the empty string.
func cellText(s string) string {
	s = strings.TrimSpace(s)
	if s == "NaN" || s == "NA" {
		return ""
	}
	return s
}

// parseGeo returns nil unless both coordinates parse as finite numbers.
func parseGeo(lat, lon string) *Geo {
	la, okLat := parseFloat(lat)
	lo, okLon := parseFloat(lon)
	if !okLat || !okLon {
		return nil
	}
	return &Geo{Lat: la, Lon: lo}
}

func parseFloat(s string) (float64, bool) {
	s = cellText(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseCount parses a non-negative whole count. Exports sometimes write
// counts as floats ("2.0"); negative or fractional values are treated as absent.
func parseCount(s string) *int {
	v, ok := parseFloat(s)
	if !ok || v < 0 || v != math.Trunc(v) {
		return nil
	}
	n := int(v)
	return &n
}
