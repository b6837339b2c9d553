package worktime

import (
	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// PAYROLL DEBIT - Hours the contract owes
// =============================================================================
//
// Every month from FirstWorkDay's month through upto's month is debited the
// MonthlyTargetHours of the contract in effect on the 1st of that month.
// Months are never prorated: a mid-month start or a balance taken on the
// 3rd still owes the full month.

// PayrollDebit returns the contractual hours owed from FirstWorkDay through
// the month containing upto.
func PayrollDebit(employee Employee, upto generic.TimePoint) (decimal.Decimal, error) {
	tl, err := employee.timeline()
	if err != nil {
		return decimal.Zero, err
	}
	return debitIn(employee, tl, generic.Period{Start: employee.FirstWorkDay, End: upto}), nil
}

func debitIn(employee Employee, tl contractTimeline, window generic.Period) decimal.Decimal {
	total := decimal.Zero
	for _, monthStart := range window.MonthStarts() {
		total = total.Add(monthTarget(employee, tl, monthStart))
	}
	return total
}

// monthTarget is the debit for the month starting at monthStart, zero when
// the month ends before the employee started.
func monthTarget(employee Employee, tl contractTimeline, monthStart generic.TimePoint) decimal.Decimal {
	monthEnd := generic.EndOfMonth(monthStart.Year(), monthStart.Month())
	if monthEnd.Before(employee.FirstWorkDay) {
		return decimal.Zero
	}
	return tl.at(monthStart).MonthlyTargetHours
}
