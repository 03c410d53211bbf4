package models

// Day statuses shown on the heating calendar.
const (
	DayEmpty     = "empty"     // no plan stored for the day
	DayNormal    = "normal"    // same plans as the same weekday one week earlier
	DayDifferent = "different" // plans differ from the previous week
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// HeatingCalendar is a month grid padded to whole weeks (Monday first).
type HeatingCalendar struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Today string        `json:"today"`
	Days  []CalendarDay `json:"days"`
}
