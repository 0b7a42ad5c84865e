package aggregate

import "github.com/couchcryptid/collision-explorer/internal/domain"

// Summaries bundles every dashboard table computed from one dataset.
type Summaries struct {
	Factors         []Count            `json:"factors"`
	Vehicles        []Count            `json:"vehicles"`
	Injuries        []CategoryTotal    `json:"injuries"`
	Fatalities      []CategoryTotal    `json:"fatalities"`
	Daily           []DailyCount       `json:"daily"`
	DayHour         []DayHourCount     `json:"heatmap"`
	Boroughs        []BoroughSummary   `json:"boroughs"`
	HourlyByBorough []HourBoroughCount `json:"hourly_borough"`
	SeverityByDay   []DaySeverity      `json:"severity_by_day"`
}

// SummarizeAll computes all summary tables.
func SummarizeAll(records []domain.CollisionRecord) Summaries {
	return Summaries{
		Factors:         TopFactors(records, TopFactorsN),
		Vehicles:        TopVehicleTypes(records, TopVehiclesN),
		Injuries:        InjuriesByUserGroup(records),
		Fatalities:      FatalitiesByUserGroup(records),
		Daily:           Daily(records),
		DayHour:         DayHour(records),
		Boroughs:        Boroughs(records),
		HourlyByBorough: HourlyByBorough(records),
		SeverityByDay:   MeanSeverityByDay(records),
	}
}

// Table returns one summary by its URL name, or false if unknown.
func (s Summaries) Table(name string) (any, bool) {
	switch name {
	case "factors":
		return s.Factors, true
	case "vehicles":
		return s.Vehicles, true
	case "injuries":
		return s.Injuries, true
	case "fatalities":
		return s.Fatalities, true
	case "daily":
		return s.Daily, true
	case "heatmap":
		return s.DayHour, true
	case "boroughs":
		return s.Boroughs, true
	case "hourly-borough":
		return s.HourlyByBorough, true
	case "severity-by-day":
		return s.SeverityByDay, true
	default:
		return nil, false
	}
}

// TableNames lists the names accepted by Table.
var TableNames = []string{
	"factors", "vehicles", "injuries", "fatalities", "daily",
	"heatmap", "boroughs", "hourly-borough", "severity-by-day",
}
