// Package timeoff models absence requests (vacation, sick leave, time off)
// and counts the workdays they consume.
package timeoff

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// ABSENCE TYPES
// =============================================================================

type AbsenceType string

const (
	TypeVacation  AbsenceType = "vacation"
	TypeSickLeave AbsenceType = "sick_leave"
	TypeTimeOff   AbsenceType = "time_off" // compensatory time, counted but never credited
)

func (t AbsenceType) IsValid() bool {
	switch t {
	case TypeVacation, TypeSickLeave, TypeTimeOff:
		return true
	}
	return false
}

// DayPortion says whether a single-day absence covers the whole day, the
// morning or the afternoon.
type DayPortion string

const (
	PortionFull DayPortion = "full"
	PortionAM   DayPortion = "am"
	PortionPM   DayPortion = "pm"
)

func (p DayPortion) IsValid() bool {
	switch p {
	case "", PortionFull, PortionAM, PortionPM:
		return true
	}
	return false
}

// IsPartial is true for am/pm. An empty portion means full.
func (p DayPortion) IsPartial() bool {
	return p == PortionAM || p == PortionPM
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// =============================================================================
// ABSENCE REQUEST
// =============================================================================

// AbsenceRequest is an absence over an inclusive range of calendar dates.
type AbsenceRequest struct {
	ID         string
	EmployeeID string
	Type       AbsenceType
	StartDate  generic.TimePoint
	EndDate    generic.TimePoint
	DayPortion DayPortion
	Status     RequestStatus
	Reason     string
}

// Period returns the inclusive date range of the request.
func (r AbsenceRequest) Period() generic.Period {
	return generic.Period{Start: r.StartDate, End: r.EndDate}
}

// Covers reports whether day falls inside the request.
func (r AbsenceRequest) Covers(day generic.TimePoint) bool {
	return r.Period().Contains(day)
}

func (r AbsenceRequest) IsApproved() bool { return r.Status == StatusApproved }
func (r AbsenceRequest) IsRejected() bool { return r.Status == StatusRejected }

// DayFactor is the share of a covered day the request consumes: 0.5 for a
// half-day vacation, 1 otherwise. Sick leave and time off are always whole
// days regardless of the portion recorded.
func (r AbsenceRequest) DayFactor() decimal.Decimal {
	if r.Type == TypeVacation && r.DayPortion.IsPartial() {
		return generic.Half
	}
	return generic.One
}

// Validate checks the request at the edit boundary. The engine assumes
// requests that passed it.
func (r AbsenceRequest) Validate() error {
	if r.EmployeeID == "" {
		return &generic.FieldError{Field: "employee_id", Message: "is required"}
	}
	if !r.Type.IsValid() {
		return &generic.FieldError{Field: "type", Message: fmt.Sprintf("unknown absence type %q", r.Type)}
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return &generic.FieldError{Field: "start_date", Message: "start and end dates are required"}
	}
	if !r.Period().IsValid() {
		return fmt.Errorf("absence %s..%s: %w", r.StartDate, r.EndDate, generic.ErrInvalidPeriod)
	}
	if !r.DayPortion.IsValid() {
		return &generic.FieldError{Field: "day_portion", Message: fmt.Sprintf("unknown day portion %q", r.DayPortion)}
	}
	if r.DayPortion.IsPartial() && !r.StartDate.Equal(r.EndDate) {
		return &generic.FieldError{Field: "day_portion", Message: "half days are only allowed on single-day requests"}
	}
	return nil
}
