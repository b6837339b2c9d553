package worktime

import (
	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
)

// VacationAccount is the vacation position for one calendar year, in days.
type VacationAccount struct {
	Year        int
	Entitlement decimal.Decimal // from the contract in effect at the start of the year
	CarriedOver decimal.Decimal // previous year's remainder, floored to half days, never negative
	Taken       decimal.Decimal
	Remaining   decimal.Decimal
}

// VacationAccountFor walks every year from the employee's first year through
// year, carrying unused days forward.
func VacationAccountFor(employee Employee, year int, in Inputs) (VacationAccount, error) {
	tl, err := employee.timeline()
	if err != nil {
		return VacationAccount{}, err
	}

	account := VacationAccount{
		Year:        year,
		Entitlement: decimal.Zero,
		CarriedOver: decimal.Zero,
		Taken:       decimal.Zero,
		Remaining:   decimal.Zero,
	}
	carry := decimal.Zero
	for y := employee.FirstWorkDay.Year(); y <= year; y++ {
		yearStart := generic.MaxTime(generic.StartOfYear(y), employee.FirstWorkDay)
		entitlement := tl.at(yearStart).VacationDays
		taken := timeoff.AnnualVacationTaken(employee.ID, in.Absences, y, in.holidays())

		account = VacationAccount{
			Year:        y,
			Entitlement: entitlement,
			CarriedOver: carry,
			Taken:       taken,
			Remaining:   entitlement.Add(carry).Sub(taken),
		}
		carry = decimal.Max(decimal.Zero, generic.FloorToHalf(account.Remaining))
	}
	return account, nil
}
