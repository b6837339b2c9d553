/*
Package worktime computes an employee's time balance: hours worked and
credited against the hours their contract owes.

PURPOSE:
  Reconciles contract history, public holidays, approved absences and
  manual corrections into one running total per employee, and derives the
  monthly statement consumers print on payslips and dashboards.

BALANCE FORMULA:
  balance(D) = startingTimeBalance
             + worked hours (entries starting on or before D)
             + adjustments (dated on or before D)
             + holiday/absence credits (FirstWorkDay..D, per day)
             − monthly targets (FirstWorkDay's month..D's month, never prorated)

PURITY:
  Every function takes complete snapshots (Employee + Inputs) and returns
  values. Nothing here performs I/O, logs, or holds state, so calls are
  safe from any number of goroutines.

SEE ALSO:
  - contract.go: Effective-dated contract resolution
  - credit.go / debit.go: The two sides of the balance
  - statement.go: Monthly statements
  - timeoff/entitlement.go: Day counts for vacation and sick leave
*/
package worktime

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
)

// =============================================================================
// EMPLOYEE & CONTRACT
// =============================================================================

// Employee is the read-only snapshot of an employee the engine works on.
type Employee struct {
	ID                       string
	Name                     string
	FirstWorkDay             generic.TimePoint
	StartingTimeBalanceHours decimal.Decimal // carried in from before system adoption
	ContractHistory          []ContractDetails
	AutomaticBreakDeduction  bool

	// Location is the employee's local zone. Entry timestamps are reduced
	// to calendar dates in this zone; nil keeps each timestamp's own zone.
	Location *time.Location
}

// DateOf returns the employee-local calendar date of t.
func (e Employee) DateOf(t time.Time) generic.TimePoint {
	return generic.DateIn(t, e.Location)
}

// Zone is the employee's location, UTC when unset.
func (e Employee) Zone() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

type TargetHoursModel string

const (
	ModelMonthly TargetHoursModel = "monthly"
	ModelWeekly  TargetHoursModel = "weekly"
)

// WeeklySchedule holds scheduled hours indexed by time.Weekday (Sunday = 0).
type WeeklySchedule [7]decimal.Decimal

// Total is the scheduled hours of a full week.
func (w WeeklySchedule) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, h := range w {
		sum = sum.Add(h)
	}
	return sum
}

// ContractDetails is one effective-dated contract record.
type ContractDetails struct {
	ValidFrom          generic.TimePoint
	EmploymentType     string
	TargetHoursModel   TargetHoursModel
	MonthlyTargetHours decimal.Decimal // fixed payroll debit for every month in effect
	DailyTargetHours   decimal.Decimal // Mon–Fri target under the monthly model
	WeeklySchedule     *WeeklySchedule // weekly model only
	VacationDays       decimal.Decimal // annual entitlement
}

// =============================================================================
// TIME ENTRIES & ADJUSTMENTS
// =============================================================================

// TimeEntry is one worked interval.
type TimeEntry struct {
	ID                   string
	EmployeeID           string
	Start                time.Time
	End                  time.Time
	BreakDurationMinutes int
}

// Duration is the gross length of the entry.
func (e TimeEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// WorkedHours is the entry length minus its break.
func (e TimeEntry) WorkedHours() decimal.Decimal {
	seconds := int64(e.Duration()/time.Second) - int64(e.BreakDurationMinutes)*60
	return decimal.NewFromInt(seconds).Div(secondsPerHour)
}

type AdjustmentType string

const (
	AdjustmentCorrection AdjustmentType = "correction"
	AdjustmentPayout     AdjustmentType = "payout" // overtime paid out, always negative
)

// Adjustment is a manual change to the balance on a date.
type Adjustment struct {
	ID         string
	EmployeeID string
	Date       generic.TimePoint
	Type       AdjustmentType
	Hours      decimal.Decimal // signed
	Note       string
}

// NewPayout builds a payout adjustment. The sign of hours is ignored: a
// payout always reduces the balance.
func NewPayout(employeeID string, date generic.TimePoint, hours decimal.Decimal, note string) Adjustment {
	return Adjustment{
		EmployeeID: employeeID,
		Date:       date,
		Type:       AdjustmentPayout,
		Hours:      hours.Abs().Neg(),
		Note:       note,
	}
}

// =============================================================================
// INPUTS - The snapshot a computation runs against
// =============================================================================

// Inputs bundles the collections the caller loaded for one employee.
// Records belonging to other employees are ignored.
type Inputs struct {
	Entries     []TimeEntry
	Absences    []timeoff.AbsenceRequest
	Adjustments []Adjustment
	Holidays    generic.HolidayCalendar
}

func (in Inputs) holidays() generic.HolidayCalendar {
	if in.Holidays == nil {
		return generic.NoHolidays{}
	}
	return in.Holidays
}

var secondsPerHour = decimal.NewFromInt(3600)
