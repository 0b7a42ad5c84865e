// Package domain models NYC Open Data "Motor Vehicle Collisions - Crashes"
// records and the pure cleaning and derivation steps applied to them.
//
// # Data Source
//
// The input is the CSV export of the NYPD collision dataset
// (https://data.cityofnewyork.us), one row per reported crash. Column names
// are the dataset's literal headers, e.g. "CRASH DATE", "LATITUDE",
// "CONTRIBUTING FACTOR VEHICLE 1". Rows are read as text and converted
// leniently by [ParseRecord]: unparsable numbers become absent values, never
// errors.
//
// # Dataset Conventions
//
// Date and time:
//
//	"CRASH DATE" is MM/DD/YYYY, "CRASH TIME" is H:MM in 24-hour notation,
//	e.g. "09/11/2021" + "2:39". They are joined with a space and parsed as
//	local wall-clock time. Rows that fail to parse keep a zero timestamp and
//	are excluded from every time-keyed view.
//
// Coordinates:
//
//	Missing coordinates and the 0,0 placeholder both occur in the export.
//	[Clean] drops any row where either value is absent or exactly zero.
//
// Counts:
//
//	"NUMBER OF ..." columns are whole-incident totals and per user-group
//	breakdowns (pedestrians, cyclists, motorists). Blank cells are absent,
//	and absent counts contribute zero to sums and to severity.
//
// Categorical fields:
//
//	BOROUGH is one of BRONX, BROOKLYN, MANHATTAN, QUEENS, STATEN ISLAND or
//	blank. Contributing factors are free text per vehicle slot (1-5);
//	"Unspecified" is a real value that only the top-factors ranking hides.
//
// # Derived Fields
//
//	Hour:      hour of CrashDateTime, absent when the timestamp is invalid.
//	DayOfWeek: full English weekday name, ordered Monday..Sunday for display.
//	Severity:  persons injured + persons killed, absent counts as 0.
//
// Derivation reads only source fields, so [Clean] and [Derive] can be re-run
// on their own output without changing any value.
package domain
