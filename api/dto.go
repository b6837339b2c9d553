/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

QUANTITIES:
  Hours and days are returned as generic.Amount ({"value": "7.5", "unit":
  "hours"}) so clients never guess the unit.

VALIDATION:
  Request types carry `validate` tags checked by go-playground/validator
  before they are converted. Domain rules (break shorter than the entry,
  half days on single days) are checked by the engine's Validate methods.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/contract.go: ContractJSON
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/factory"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID                      string                 `json:"id"`
	Name                    string                 `json:"name"`
	FirstWorkDay            string                 `json:"first_work_day"`
	StartingTimeBalance     generic.Amount         `json:"starting_time_balance"`
	AutomaticBreakDeduction bool                   `json:"automatic_break_deduction"`
	Timezone                string                 `json:"timezone,omitempty"`
	Contracts               []factory.ContractJSON `json:"contracts"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID                       string                 `json:"id"`
	Name                     string                 `json:"name" validate:"required"`
	FirstWorkDay             string                 `json:"first_work_day" validate:"required,datetime=2006-01-02"`
	StartingTimeBalanceHours decimal.Decimal        `json:"starting_time_balance_hours"`
	AutomaticBreakDeduction  bool                   `json:"automatic_break_deduction"`
	Timezone                 string                 `json:"timezone"`
	Contracts                []factory.ContractJSON `json:"contracts" validate:"required,min=1"`
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

// TimeEntryRequest creates or replaces a time entry.
type TimeEntryRequest struct {
	Start                time.Time `json:"start" validate:"required"`
	End                  time.Time `json:"end" validate:"required"`
	BreakDurationMinutes int       `json:"break_duration_minutes" validate:"gte=0"`
}

// TimeEntryDTO represents a time entry in API responses.
type TimeEntryDTO struct {
	ID                   string         `json:"id"`
	EmployeeID           string         `json:"employee_id"`
	Start                string         `json:"start"`
	End                  string         `json:"end"`
	BreakDurationMinutes int            `json:"break_duration_minutes"`
	Worked               generic.Amount `json:"worked"`
}

func toTimeEntryDTO(e worktime.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:                   e.ID,
		EmployeeID:           e.EmployeeID,
		Start:                e.Start.Format(time.RFC3339),
		End:                  e.End.Format(time.RFC3339),
		BreakDurationMinutes: e.BreakDurationMinutes,
		Worked:               generic.Hours(e.WorkedHours()),
	}
}

// =============================================================================
// ABSENCES
// =============================================================================

// AbsenceRequestBody submits an absence.
type AbsenceRequestBody struct {
	Type       string `json:"type" validate:"required,oneof=vacation sick_leave time_off"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	DayPortion string `json:"day_portion" validate:"omitempty,oneof=full am pm"`
	Reason     string `json:"reason"`
}

// AbsenceDTO represents an absence request in API responses.
type AbsenceDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	DayPortion string `json:"day_portion"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
}

func toAbsenceDTO(r timeoff.AbsenceRequest) AbsenceDTO {
	portion := r.DayPortion
	if portion == "" {
		portion = timeoff.PortionFull
	}
	return AbsenceDTO{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Type:       string(r.Type),
		StartDate:  r.StartDate.String(),
		EndDate:    r.EndDate.String(),
		DayPortion: string(portion),
		Status:     string(r.Status),
		Reason:     r.Reason,
	}
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

// AdjustmentRequest records a manual correction or an overtime payout.
type AdjustmentRequest struct {
	Date  string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type  string          `json:"type" validate:"required,oneof=correction payout"`
	Hours decimal.Decimal `json:"hours"`
	Note  string          `json:"note"`
}

// AdjustmentDTO represents an adjustment in API responses.
type AdjustmentDTO struct {
	ID         string         `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Date       string         `json:"date"`
	Type       string         `json:"type"`
	Hours      generic.Amount `json:"hours"`
	Note       string         `json:"note,omitempty"`
}

func toAdjustmentDTO(a worktime.Adjustment) AdjustmentDTO {
	return AdjustmentDTO{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.String(),
		Type:       string(a.Type),
		Hours:      generic.Hours(a.Hours),
		Note:       a.Note,
	}
}

// =============================================================================
// BALANCE & STATEMENTS
// =============================================================================

// BalancePointDTO is one month-end balance.
type BalancePointDTO struct {
	Date    string         `json:"date"`
	Balance generic.Amount `json:"balance"`
}

// BalanceDTO is the time balance as of a date.
type BalanceDTO struct {
	EmployeeID string         `json:"employee_id"`
	AsOf       string         `json:"as_of"`
	Balance    generic.Amount `json:"balance"`
	Starting   generic.Amount `json:"starting"`
	Credited   CreditsDTO     `json:"credited"`
	Target     generic.Amount `json:"target"`
}

// CreditsDTO splits credited hours by source.
type CreditsDTO struct {
	Worked      generic.Amount `json:"worked"`
	Adjustments generic.Amount `json:"adjustments"`
	Vacation    generic.Amount `json:"vacation"`
	SickLeave   generic.Amount `json:"sick_leave"`
	Holiday     generic.Amount `json:"holiday"`
	Total       generic.Amount `json:"total"`
}

func toCreditsDTO(c worktime.CreditBreakdown) CreditsDTO {
	return CreditsDTO{
		Worked:      generic.Hours(c.Worked),
		Adjustments: generic.Hours(c.Adjustments),
		Vacation:    generic.Hours(c.Vacation),
		SickLeave:   generic.Hours(c.SickLeave),
		Holiday:     generic.Hours(c.Holiday),
		Total:       generic.Hours(c.Total()),
	}
}

// StatementDTO is one month of the balance.
type StatementDTO struct {
	EmployeeID           string         `json:"employee_id"`
	Year                 int            `json:"year"`
	Month                int            `json:"month"`
	PreviousBalance      generic.Amount `json:"previous_balance"`
	WorkedHours          generic.Amount `json:"worked_hours"`
	Adjustments          generic.Amount `json:"adjustments"`
	VacationCreditHours  generic.Amount `json:"vacation_credit_hours"`
	SickLeaveCreditHours generic.Amount `json:"sick_leave_credit_hours"`
	HolidayCreditHours   generic.Amount `json:"holiday_credit_hours"`
	TotalCredited        generic.Amount `json:"total_credited"`
	TargetHours          generic.Amount `json:"target_hours"`
	MonthlyBalance       generic.Amount `json:"monthly_balance"`
	EndOfMonthBalance    generic.Amount `json:"end_of_month_balance"`
	Closed               bool           `json:"closed"`
}

func toStatementDTO(s worktime.Statement) StatementDTO {
	return StatementDTO{
		EmployeeID:           s.EmployeeID,
		Year:                 s.Year,
		Month:                int(s.Month),
		PreviousBalance:      generic.Hours(s.PreviousBalance),
		WorkedHours:          generic.Hours(s.WorkedHours),
		Adjustments:          generic.Hours(s.Adjustments),
		VacationCreditHours:  generic.Hours(s.VacationCreditHours),
		SickLeaveCreditHours: generic.Hours(s.SickLeaveCreditHours),
		HolidayCreditHours:   generic.Hours(s.HolidayCreditHours),
		TotalCredited:        generic.Hours(s.TotalCredited),
		TargetHours:          generic.Hours(s.TargetHours),
		MonthlyBalance:       generic.Hours(s.MonthlyBalance),
		EndOfMonthBalance:    generic.Hours(s.EndOfMonthBalance),
	}
}

// =============================================================================
// ENTITLEMENTS
// =============================================================================

// EntitlementDTO is the day-count view of a year.
type EntitlementDTO struct {
	EmployeeID    string                `json:"employee_id"`
	Year          int                   `json:"year"`
	VacationTaken generic.Amount        `json:"vacation_taken"`
	SickDays      generic.Amount        `json:"sick_days"`
	Vacation      VacationAccountDTO    `json:"vacation_account"`
	Months        []timeoff.MonthCounts `json:"months"`
}

// VacationAccountDTO mirrors worktime.VacationAccount.
type VacationAccountDTO struct {
	Entitlement generic.Amount `json:"entitlement"`
	CarriedOver generic.Amount `json:"carried_over"`
	Taken       generic.Amount `json:"taken"`
	Remaining   generic.Amount `json:"remaining"`
}

// =============================================================================
// COLLISIONS
// =============================================================================

// CollisionCheckRequest asks whether an interval is free for an employee.
type CollisionCheckRequest struct {
	EmployeeID string    `json:"employee_id" validate:"required"`
	Start      time.Time `json:"start" validate:"required"`
	End        time.Time `json:"end" validate:"required"`
	IgnoreID   string    `json:"ignore_id"`
}

// CollisionDTO describes the first record an interval clashes with.
type CollisionDTO struct {
	Conflict bool          `json:"conflict"`
	Type     string        `json:"type,omitempty"`
	Entry    *TimeEntryDTO `json:"entry,omitempty"`
	Absence  *AbsenceDTO   `json:"absence,omitempty"`
}

func toCollisionDTO(c *worktime.Conflict) CollisionDTO {
	if c == nil {
		return CollisionDTO{}
	}
	dto := CollisionDTO{Conflict: true, Type: string(c.Type)}
	if c.Entry != nil {
		e := toTimeEntryDTO(*c.Entry)
		dto.Entry = &e
	}
	if c.Absence != nil {
		a := toAbsenceDTO(*c.Absence)
		dto.Absence = &a
	}
	return dto
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayRequest adds one holiday.
type HolidayRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Name   string `json:"name" validate:"required"`
	Region string `json:"region"`
}

// DefaultHolidaysRequest loads the statutory holidays of a year.
type DefaultHolidaysRequest struct {
	Year   int    `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Region string `json:"region"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
