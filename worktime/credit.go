package worktime

import (
	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
)

// =============================================================================
// CREDITS - Hours added to the balance
// =============================================================================

// CreditBreakdown splits credited hours by source.
type CreditBreakdown struct {
	Worked      decimal.Decimal // entries minus breaks
	Adjustments decimal.Decimal // corrections and payouts, signed
	Vacation    decimal.Decimal
	SickLeave   decimal.Decimal
	Holiday     decimal.Decimal
}

// Absence is the hours credited for days not worked (holidays included).
func (c CreditBreakdown) Absence() decimal.Decimal {
	return c.Vacation.Add(c.SickLeave).Add(c.Holiday)
}

// Total is every credited hour.
func (c CreditBreakdown) Total() decimal.Decimal {
	return c.Worked.Add(c.Adjustments).Add(c.Absence())
}

// Credits accumulates everything the employee is credited with from
// FirstWorkDay through upto.
func Credits(employee Employee, upto generic.TimePoint, in Inputs) (CreditBreakdown, error) {
	tl, err := employee.timeline()
	if err != nil {
		return CreditBreakdown{}, err
	}
	return creditsIn(employee, tl, generic.Period{Start: employee.FirstWorkDay, End: upto}, in), nil
}

// creditsIn accumulates credits for the days of window that fall on or
// after FirstWorkDay. Records dated before FirstWorkDay are covered by the
// starting balance and never counted.
func creditsIn(employee Employee, tl contractTimeline, window generic.Period, in Inputs) CreditBreakdown {
	out := CreditBreakdown{
		Worked:      decimal.Zero,
		Adjustments: decimal.Zero,
		Vacation:    decimal.Zero,
		SickLeave:   decimal.Zero,
		Holiday:     decimal.Zero,
	}
	window.Start = generic.MaxTime(window.Start, employee.FirstWorkDay)
	if !window.IsValid() {
		return out
	}

	out.Worked = WorkedHours(employee, window, in.Entries)
	out.Adjustments = AdjustmentHours(employee, window, in.Adjustments)

	absences := creditableAbsences(employee.ID, window, in.Absences)
	holidays := in.holidays()

	window.EachDay(func(day generic.TimePoint) {
		scheduled := ScheduledHours(tl.at(day), day)
		if !scheduled.IsPositive() {
			return
		}
		if holidays.IsHoliday(day) {
			out.Holiday = out.Holiday.Add(scheduled)
			return
		}
		for _, a := range absences {
			if !a.Covers(day) {
				continue
			}
			credit := scheduled.Mul(a.DayFactor())
			switch a.Type {
			case timeoff.TypeVacation:
				out.Vacation = out.Vacation.Add(credit)
			case timeoff.TypeSickLeave:
				out.SickLeave = out.SickLeave.Add(credit)
			}
			return
		}
	})
	return out
}

// WorkedHours sums entry hours net of breaks for entries of the employee
// starting inside window.
func WorkedHours(employee Employee, window generic.Period, entries []TimeEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.EmployeeID != employee.ID {
			continue
		}
		if window.Contains(employee.DateOf(e.Start)) {
			total = total.Add(e.WorkedHours())
		}
	}
	return total
}

// AdjustmentHours sums the signed adjustments of the employee dated inside
// window.
func AdjustmentHours(employee Employee, window generic.Period, adjustments []Adjustment) decimal.Decimal {
	total := decimal.Zero
	for _, a := range adjustments {
		if a.EmployeeID != employee.ID {
			continue
		}
		if window.Contains(a.Date) {
			total = total.Add(a.Hours)
		}
	}
	return total
}

// creditableAbsences keeps approved vacation and sick leave of the employee
// that touch window. Time off is never credited.
func creditableAbsences(employeeID string, window generic.Period, absences []timeoff.AbsenceRequest) []timeoff.AbsenceRequest {
	var out []timeoff.AbsenceRequest
	for _, a := range absences {
		if a.EmployeeID != employeeID || !a.IsApproved() {
			continue
		}
		if a.Type != timeoff.TypeVacation && a.Type != timeoff.TypeSickLeave {
			continue
		}
		if a.Period().Overlaps(window) {
			out = append(out, a)
		}
	}
	return out
}
