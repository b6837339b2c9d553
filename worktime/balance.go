package worktime

import (
	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// BALANCE - Running overtime/undertime total
// =============================================================================

// Balance returns the employee's time balance at the end of upto:
//
//	StartingTimeBalanceHours + credits − payroll debits
//
// Before FirstWorkDay the employee is not active yet and the balance is the
// starting balance. An empty contract history is an error even then.
func Balance(employee Employee, upto generic.TimePoint, in Inputs) (decimal.Decimal, error) {
	tl, err := employee.timeline()
	if err != nil {
		return decimal.Zero, err
	}
	return balanceAt(employee, tl, upto, in), nil
}

func balanceAt(employee Employee, tl contractTimeline, upto generic.TimePoint, in Inputs) decimal.Decimal {
	if upto.Before(employee.FirstWorkDay) {
		return employee.StartingTimeBalanceHours
	}
	active := generic.Period{Start: employee.FirstWorkDay, End: upto}
	credits := creditsIn(employee, tl, active, in)
	debits := debitIn(employee, tl, active)
	return employee.StartingTimeBalanceHours.Add(credits.Total()).Sub(debits)
}

// BalancePoint is the balance at the end of one month.
type BalancePoint struct {
	Date    generic.TimePoint
	Balance decimal.Decimal
}

// BalanceSeries returns the month-end balances for every month touched by
// [from, to], oldest first.
func BalanceSeries(employee Employee, from, to generic.TimePoint, in Inputs) ([]BalancePoint, error) {
	statements, err := statementsFor(employee, generic.Period{Start: from, End: to}.MonthStarts(), in)
	if err != nil {
		return nil, err
	}
	points := make([]BalancePoint, len(statements))
	for i, s := range statements {
		points[i] = BalancePoint{
			Date:    generic.EndOfMonth(s.Year, s.Month),
			Balance: s.EndOfMonthBalance,
		}
	}
	return points, nil
}
