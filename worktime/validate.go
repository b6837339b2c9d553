package worktime

import (
	"fmt"

	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// VALIDATION - Run at the edit boundary, before data reaches the engine
// =============================================================================

// Validate rejects entries the engine cannot account for.
func (e TimeEntry) Validate() error {
	if e.EmployeeID == "" {
		return &generic.FieldError{Field: "employee_id", Message: "is required"}
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("entry %s ends at or before it starts: %w", e.ID, generic.ErrInvalidPeriod)
	}
	if e.BreakDurationMinutes < 0 {
		return &generic.FieldError{Field: "break_duration_minutes", Message: "must not be negative"}
	}
	if float64(e.BreakDurationMinutes) >= e.Duration().Minutes() {
		return &generic.FieldError{Field: "break_duration_minutes", Message: "must be shorter than the entry"}
	}
	return nil
}

// Validate checks the adjustment type and the payout sign.
func (a Adjustment) Validate() error {
	if a.EmployeeID == "" {
		return &generic.FieldError{Field: "employee_id", Message: "is required"}
	}
	if a.Date.IsZero() {
		return &generic.FieldError{Field: "date", Message: "is required"}
	}
	switch a.Type {
	case AdjustmentCorrection:
	case AdjustmentPayout:
		if a.Hours.IsPositive() {
			return &generic.FieldError{Field: "hours", Message: "payouts must be negative"}
		}
	default:
		return &generic.FieldError{Field: "type", Message: fmt.Sprintf("unknown adjustment type %q", a.Type)}
	}
	return nil
}

// ValidateContract checks one contract record.
func ValidateContract(c ContractDetails) error {
	if c.ValidFrom.IsZero() {
		return &generic.FieldError{Field: "valid_from", Message: "is required"}
	}
	if c.MonthlyTargetHours.IsNegative() || c.DailyTargetHours.IsNegative() {
		return &generic.FieldError{Field: "target_hours", Message: "must not be negative"}
	}
	if c.VacationDays.IsNegative() || !generic.IsHalfStep(c.VacationDays) {
		return &generic.FieldError{Field: "vacation_days", Message: "must be a non-negative multiple of 0.5"}
	}
	switch c.TargetHoursModel {
	case ModelMonthly:
		if c.WeeklySchedule != nil {
			return &generic.FieldError{Field: "weekly_schedule", Message: "only allowed with the weekly model"}
		}
	case ModelWeekly:
		if c.WeeklySchedule == nil {
			return &generic.FieldError{Field: "weekly_schedule", Message: "required with the weekly model"}
		}
		for _, h := range c.WeeklySchedule {
			if h.IsNegative() {
				return &generic.FieldError{Field: "weekly_schedule", Message: "hours must not be negative"}
			}
		}
	default:
		return &generic.FieldError{Field: "target_hours_model", Message: fmt.Sprintf("unknown model %q", c.TargetHoursModel)}
	}
	return nil
}

// ValidateHistory checks every record and rejects two records sharing a
// ValidFrom, so resolution never depends on insertion order.
func ValidateHistory(history []ContractDetails) error {
	if len(history) == 0 {
		return generic.ErrEmptyContractHistory
	}
	seen := make(map[generic.TimePoint]bool, len(history))
	for _, c := range history {
		if err := ValidateContract(c); err != nil {
			return err
		}
		if seen[c.ValidFrom] {
			return fmt.Errorf("%s: %w", c.ValidFrom, generic.ErrDuplicateContract)
		}
		seen[c.ValidFrom] = true
	}
	return nil
}
