package worktime

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// MONTHLY STATEMENT - Per-month breakdown of the balance
// =============================================================================

// Statement is one month of the balance, split the way payroll exports and
// dashboards print it. EndOfMonthBalance always equals
// Balance(employee, EndOfMonth(Year, Month)).
type Statement struct {
	EmployeeID string
	Year       int
	Month      time.Month

	PreviousBalance      decimal.Decimal
	WorkedHours          decimal.Decimal
	Adjustments          decimal.Decimal
	VacationCreditHours  decimal.Decimal
	SickLeaveCreditHours decimal.Decimal
	HolidayCreditHours   decimal.Decimal
	TotalCredited        decimal.Decimal
	TargetHours          decimal.Decimal
	MonthlyBalance       decimal.Decimal
	EndOfMonthBalance    decimal.Decimal
}

// MonthlyStatement computes the statement for one calendar month.
func MonthlyStatement(employee Employee, year int, month time.Month, in Inputs) (Statement, error) {
	statements, err := statementsFor(employee, []generic.TimePoint{generic.StartOfMonth(year, month)}, in)
	if err != nil {
		return Statement{}, err
	}
	return statements[0], nil
}

// YearStatements computes January through December of year.
func YearStatements(employee Employee, year int, in Inputs) ([]Statement, error) {
	return statementsFor(employee, generic.YearPeriod(year).MonthStarts(), in)
}

// statementsFor computes statements for consecutive months. The first
// month's previous balance is computed from scratch; each later month
// chains from the one before.
func statementsFor(employee Employee, monthStarts []generic.TimePoint, in Inputs) ([]Statement, error) {
	tl, err := employee.timeline()
	if err != nil {
		return nil, err
	}
	if len(monthStarts) == 0 {
		return nil, nil
	}

	out := make([]Statement, 0, len(monthStarts))
	previous := balanceAt(employee, tl, monthStarts[0].AddDays(-1), in)
	for _, start := range monthStarts {
		s := monthStatement(employee, tl, start, previous, in)
		out = append(out, s)
		previous = s.EndOfMonthBalance
	}
	return out, nil
}

func monthStatement(employee Employee, tl contractTimeline, monthStart generic.TimePoint, previous decimal.Decimal, in Inputs) Statement {
	month := generic.MonthPeriod(monthStart.Year(), monthStart.Month())
	credits := creditsIn(employee, tl, month, in)
	target := monthTarget(employee, tl, monthStart)

	total := credits.Total()
	delta := total.Sub(target)
	return Statement{
		EmployeeID:           employee.ID,
		Year:                 monthStart.Year(),
		Month:                monthStart.Month(),
		PreviousBalance:      previous,
		WorkedHours:          credits.Worked,
		Adjustments:          credits.Adjustments,
		VacationCreditHours:  credits.Vacation,
		SickLeaveCreditHours: credits.SickLeave,
		HolidayCreditHours:   credits.Holiday,
		TotalCredited:        total,
		TargetHours:          target,
		MonthlyBalance:       delta,
		EndOfMonthBalance:    previous.Add(delta),
	}
}
