package domain

import "time"

// Source column headers.
const (
	ColCrashDate          = "CRASH DATE"
	ColCrashTime          = "CRASH TIME"
	ColBorough            = "BOROUGH"
	ColLatitude           = "LATITUDE"
	ColLongitude          = "LONGITUDE"
	ColPersonsInjured     = "NUMBER OF PERSONS INJURED"
	ColPersonsKilled      = "NUMBER OF PERSONS KILLED"
	ColPedestriansInjured = "NUMBER OF PEDESTRIANS INJURED"
	ColPedestriansKilled  = "NUMBER OF PEDESTRIANS KILLED"
	ColCyclistsInjured    = "NUMBER OF CYCLIST INJURED"
	ColCyclistsKilled     = "NUMBER OF CYCLIST KILLED"
	ColMotoristsInjured   = "NUMBER OF MOTORIST INJURED"
	ColMotoristsKilled    = "NUMBER OF MOTORIST KILLED"
	ColCollisionID        = "COLLISION_ID"
)

// FactorColumns lists the per-vehicle contributing factor headers in slot order.
var FactorColumns = [5]string{
	"CONTRIBUTING FACTOR VEHICLE 1",
	"CONTRIBUTING FACTOR VEHICLE 2",
	"CONTRIBUTING FACTOR VEHICLE 3",
	"CONTRIBUTING FACTOR VEHICLE 4",
	"CONTRIBUTING FACTOR VEHICLE 5",
}

// VehicleTypeColumns lists the vehicle type headers used by the explorer.
var VehicleTypeColumns = [2]string{
	"VEHICLE TYPE CODE 1",
	"VEHICLE TYPE CODE 2",
}

// RequiredColumns are the headers the pipeline reads. Other columns are carried
// through untouched in the raw table.
var RequiredColumns = []string{
	ColCrashDate, ColCrashTime, ColBorough, ColLatitude, ColLongitude,
	ColPersonsInjured, ColPersonsKilled,
	ColPedestriansInjured, ColPedestriansKilled,
	ColCyclistsInjured, ColCyclistsKilled,
	ColMotoristsInjured, ColMotoristsKilled,
	FactorColumns[0], FactorColumns[1], FactorColumns[2], FactorColumns[3], FactorColumns[4],
	VehicleTypeColumns[0], VehicleTypeColumns[1],
}

// Unspecified is the dataset's placeholder contributing factor.
const Unspecified = "Unspecified"

// MissingCategory labels the group of rows whose grouping key is absent.
const MissingCategory = "(missing)"

// RawRecord is one source row keyed by header. A header absent from the file
// reads as the empty string.
type RawRecord map[string]string

// RawTable is the loaded source table before any conversion.
type RawTable struct {
	Columns []string
	Rows    []RawRecord
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Casualties holds the injury and fatality counts of one collision.
// A nil count was blank or unparsable in the source.
type Casualties struct {
	PersonsInjured     *int `json:"persons_injured"`
	PersonsKilled      *int `json:"persons_killed"`
	PedestriansInjured *int `json:"pedestrians_injured"`
	PedestriansKilled  *int `json:"pedestrians_killed"`
	CyclistsInjured    *int `json:"cyclists_injured"`
	CyclistsKilled     *int `json:"cyclists_killed"`
	MotoristsInjured   *int `json:"motorists_injured"`
	MotoristsKilled    *int `json:"motorists_killed"`
}

// CollisionRecord is one crash after parsing. Source fields are set by
// ParseRecord, CrashDateTime by Clean, and the derived block by Derive.
type CollisionRecord struct {
	CollisionID  string     `json:"collision_id,omitempty"`
	CrashDate    string     `json:"crash_date"`
	CrashTime    string     `json:"crash_time"`
	Borough      string     `json:"borough,omitempty"`
	Geo          *Geo       `json:"geo,omitempty"`
	Casualties   Casualties `json:"casualties"`
	Factors      [5]string  `json:"contributing_factors"`
	VehicleTypes [2]string  `json:"vehicle_types"`

	// CrashDateTime is zero when the date and time text did not parse.
	CrashDateTime time.Time `json:"crash_datetime"`

	Hour      *int    `json:"hour,omitempty"`
	DayOfWeek string  `json:"day_of_week,omitempty"`
	Severity  float64 `json:"severity"`
}

// HasTimestamp reports whether CrashDateTime parsed.
func (r CollisionRecord) HasTimestamp() bool {
	return !r.CrashDateTime.IsZero()
}

// BoroughOrMissing returns the borough, or MissingCategory when absent.
func (r CollisionRecord) BoroughOrMissing() string {
	if r.Borough == "" {
		return MissingCategory
	}
	return r.Borough
}

// Fatal reports whether anyone was killed.
func (r CollisionRecord) Fatal() bool {
	return CountOrZero(r.Casualties.PersonsKilled) > 0
}

// CountOrZero dereferences a count, treating absent as zero.
func CountOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
