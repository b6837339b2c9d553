package generic

import "sort"

// =============================================================================
// HOLIDAY CALENDAR - Public holidays per year
// =============================================================================

// Holiday is a public holiday. Holidays credit scheduled hours as if worked
// and never count as vacation or sick days.
type Holiday struct {
	Date   TimePoint `json:"date"`
	Name   string    `json:"name"`
	Region string    `json:"region,omitempty"` // empty = nationwide
}

// HolidayCalendar provides holiday lookup functionality.
type HolidayCalendar interface {
	// IsHoliday checks if a date is a public holiday.
	IsHoliday(date TimePoint) bool

	// Holidays returns all holidays in a given year, ordered by date.
	Holidays(year int) []Holiday
}

// HolidayMap is the {year → holidays} snapshot supplied by the holiday
// provider. The zero value is an empty calendar.
type HolidayMap map[int][]Holiday

var _ HolidayCalendar = HolidayMap(nil)

func (m HolidayMap) IsHoliday(date TimePoint) bool {
	_, ok := m.Lookup(date)
	return ok
}

// Lookup returns the holiday on date, if any.
func (m HolidayMap) Lookup(date TimePoint) (Holiday, bool) {
	for _, h := range m[date.Year()] {
		if h.Date.Equal(date) {
			return h, true
		}
	}
	return Holiday{}, false
}

func (m HolidayMap) Holidays(year int) []Holiday {
	out := append([]Holiday(nil), m[year]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Add files holidays under their own year and drops same-date duplicates.
func (m HolidayMap) Add(holidays ...Holiday) {
	for _, h := range holidays {
		if m.IsHoliday(h.Date) {
			continue
		}
		m[h.Date.Year()] = append(m[h.Date.Year()], h)
	}
}

// NoHolidays is a calendar with no holidays at all.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(TimePoint) bool { return false }
func (NoHolidays) Holidays(int) []Holiday   { return nil }
