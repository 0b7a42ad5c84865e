package domain

// Weekdays is the display order of DayOfWeek values.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayIndex returns the Monday-based position of a weekday name, or -1.
func WeekdayIndex(name string) int {
	for i, d := range Weekdays {
		if d == name {
			return i
		}
	}
	return -1
}

// RushHours is the fixed set of hours treated as rush hour.
var RushHours = map[int]bool{7: true, 8: true, 9: true, 16: true, 17: true, 18: true}

// IsRushHour reports whether hour falls in RushHours.
func IsRushHour(hour int) bool {
	return RushHours[hour]
}
