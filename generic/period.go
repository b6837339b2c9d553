package generic

import "time"

// =============================================================================
// PERIOD - Inclusive calendar-date range
// =============================================================================

// Period is an inclusive range of calendar dates [Start, End].
//
// Examples:
//   - Month statement: Jan 1 - Jan 31
//   - Entitlement year: Jan 1 - Dec 31
//   - Absence request: startDate - endDate
type Period struct {
	Start TimePoint
	End   TimePoint
}

// MonthPeriod returns the period covering a calendar month.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

// YearPeriod returns the period covering a calendar year.
func YearPeriod(year int) Period {
	return Period{Start: StartOfYear(year), End: EndOfYear(year)}
}

// IsValid reports whether End is not before Start.
func (p Period) IsValid() bool {
	return !p.End.Before(p.Start)
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Overlaps reports whether two inclusive periods share at least one day.
func (p Period) Overlaps(other Period) bool {
	return p.Start.BeforeOrEqual(other.End) && p.End.AfterOrEqual(other.Start)
}

// Intersect returns the shared days of two periods. ok is false when they
// do not overlap.
func (p Period) Intersect(other Period) (Period, bool) {
	if !p.Overlaps(other) {
		return Period{}, false
	}
	return Period{Start: MaxTime(p.Start, other.Start), End: MinTime(p.End, other.End)}, true
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	p.EachDay(func(d TimePoint) {
		days = append(days, d)
	})
	return days
}

// EachDay calls fn for every day in the period, in order.
func (p Period) EachDay(fn func(TimePoint)) {
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		fn(current)
	}
}

// MonthStarts returns the first day of every month touched by the period.
func (p Period) MonthStarts() []TimePoint {
	var starts []TimePoint
	if !p.IsValid() {
		return starts
	}
	last := StartOfMonth(p.End.Year(), p.End.Month())
	for current := StartOfMonth(p.Start.Year(), p.Start.Month()); current.BeforeOrEqual(last); current = current.AddMonths(1) {
		starts = append(starts, current)
	}
	return starts
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
