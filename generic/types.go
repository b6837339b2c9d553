/*
Package generic provides the calendar and quantity primitives shared by the
work time engine.

PURPOSE:
  Every figure the engine produces is either a number of hours (balances,
  credits, payroll debits) or a number of days (vacation and sick-day
  counts), and every comparison it makes is on a calendar date. This
  package owns those two concerns so the domain packages never touch
  float64 arithmetic or raw timestamps.

KEY CONCEPTS:
  - Amount:    A decimal quantity with a unit (hours or days)
  - TimePoint: A calendar date normalized to YYYY-MM-DD
  - Period:    An inclusive date range with day/month iteration
  - Holiday:   A public holiday, grouped per year in a HolidayMap

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal, never float64, for hours and days
  2. Calendar dates: timestamps are reduced to a date in the employee's
     zone before any comparison
  3. Values only: nothing here holds state or performs I/O

SEE ALSO:
  - time.go: TimePoint and date helpers
  - period.go: Period iteration
  - holiday.go: Holiday calendar lookups
  - errors.go: Error types
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal `json:"value"`
	Unit  Unit            `json:"unit"`
}

type Unit string

const (
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
)

// Hours and Days wrap an already-computed decimal.
func Hours(v decimal.Decimal) Amount { return Amount{Value: v, Unit: UnitHours} }
func Days(v decimal.Decimal) Amount  { return Amount{Value: v, Unit: UnitDays} }

// =============================================================================
// HALF-DAY ARITHMETIC
// =============================================================================

var (
	Half = decimal.NewFromFloat(0.5)
	One  = decimal.NewFromInt(1)
	two  = decimal.NewFromInt(2)
)

// FloorToHalf rounds v down to the nearest multiple of 0.5.
func FloorToHalf(v decimal.Decimal) decimal.Decimal {
	return v.Mul(two).Floor().Div(two)
}

// IsHalfStep reports whether v is a multiple of 0.5.
func IsHalfStep(v decimal.Decimal) bool {
	return v.Mul(two).Equal(v.Mul(two).Floor())
}
