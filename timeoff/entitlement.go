package timeoff

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// ENTITLEMENT COUNTS - Workdays consumed by approved absences
// =============================================================================
//
// A workday here is Monday–Friday and not a public holiday. Contract
// schedules are deliberately not consulted: these are day counts for
// entitlement reporting, not hour credits.

// MonthCounts is the number of workdays consumed in one month per type.
type MonthCounts struct {
	Month    time.Month      `json:"month"`
	Vacation decimal.Decimal `json:"vacation"`
	Sick     decimal.Decimal `json:"sick"`
	TimeOff  decimal.Decimal `json:"time_off"`
}

// AnnualVacationTaken returns the vacation days an employee took in year.
// Half-day requests count 0.5.
func AnnualVacationTaken(employeeID string, requests []AbsenceRequest, year int, holidays generic.HolidayCalendar) decimal.Decimal {
	return countDays(employeeID, requests, generic.YearPeriod(year), holidays, TypeVacation)
}

// AnnualSickDaysTaken returns the sick days in year. Requests spanning a year
// boundary contribute only their in-year days.
func AnnualSickDaysTaken(employeeID string, requests []AbsenceRequest, year int, holidays generic.HolidayCalendar) decimal.Decimal {
	return countDays(employeeID, requests, generic.YearPeriod(year), holidays, TypeSickLeave)
}

// MonthlyAbsenceBreakdown returns twelve MonthCounts, January first.
func MonthlyAbsenceBreakdown(employeeID string, requests []AbsenceRequest, year int, holidays generic.HolidayCalendar) []MonthCounts {
	out := make([]MonthCounts, 0, 12)
	for m := time.January; m <= time.December; m++ {
		p := generic.MonthPeriod(year, m)
		out = append(out, MonthCounts{
			Month:    m,
			Vacation: countDays(employeeID, requests, p, holidays, TypeVacation),
			Sick:     countDays(employeeID, requests, p, holidays, TypeSickLeave),
			TimeOff:  countDays(employeeID, requests, p, holidays, TypeTimeOff),
		})
	}
	return out
}

// countDays sums the day factor of every approved request of kind over the
// workdays of window. A day covered by two requests of the same kind is
// counted once.
func countDays(employeeID string, requests []AbsenceRequest, window generic.Period, holidays generic.HolidayCalendar, kind AbsenceType) decimal.Decimal {
	var relevant []AbsenceRequest
	for _, r := range requests {
		if r.EmployeeID != employeeID || r.Type != kind || !r.IsApproved() {
			continue
		}
		if r.Period().Overlaps(window) {
			relevant = append(relevant, r)
		}
	}
	if len(relevant) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	window.EachDay(func(day generic.TimePoint) {
		if !day.IsWorkdayWithHolidays(holidays) {
			return
		}
		for _, r := range relevant {
			if r.Covers(day) {
				total = total.Add(r.DayFactor())
				return
			}
		}
	})
	return total
}
