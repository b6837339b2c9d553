/*
Package factory provides JSON to Go contract conversion.

PURPOSE:
  Converts JSON contract records into worktime.ContractDetails. HR enters
  contracts through the admin UI or imports them from payroll; the factory
  validates them and creates the Go structs the engine resolves against.

JSON SCHEMA:
  {
    "valid_from": "2024-01-01",
    "employment_type": "full_time",
    "target_hours_model": "weekly",
    "monthly_target_hours": 173.33,
    "daily_target_hours": 8,
    "weekly_schedule": {"monday": 8, "tuesday": 8, "wednesday": 8, "thursday": 8, "friday": 6},
    "vacation_days": 30
  }

  weekly_schedule is required with the weekly model and rejected with the
  monthly one. Missing weekdays are 0 hours.

USAGE:
  f := factory.NewContractFactory()
  contract, err := f.ParseContract(jsonString)
  history, err := f.ParseHistory(jsonArray)

SEE ALSO:
  - worktime/types.go: ContractDetails
  - worktime/validate.go: ValidateContract, ValidateHistory
*/
package factory

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ContractJSON is the JSON representation of a contract record.
type ContractJSON struct {
	ValidFrom          string                     `json:"valid_from"`
	EmploymentType     string                     `json:"employment_type"`
	TargetHoursModel   string                     `json:"target_hours_model"`
	MonthlyTargetHours decimal.Decimal            `json:"monthly_target_hours"`
	DailyTargetHours   decimal.Decimal            `json:"daily_target_hours"`
	WeeklySchedule     map[string]decimal.Decimal `json:"weekly_schedule,omitempty"`
	VacationDays       decimal.Decimal            `json:"vacation_days"`
}

// =============================================================================
// CONTRACT FACTORY
// =============================================================================

// ContractFactory converts JSON contracts to Go structs.
type ContractFactory struct{}

// NewContractFactory creates a new contract factory.
func NewContractFactory() *ContractFactory {
	return &ContractFactory{}
}

// ParseContract parses a JSON string into a validated contract record.
func (f *ContractFactory) ParseContract(jsonStr string) (worktime.ContractDetails, error) {
	var cj ContractJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return worktime.ContractDetails{}, fmt.Errorf("failed to parse contract JSON: %w", err)
	}
	return f.FromJSON(cj)
}

// ParseHistory parses a JSON array of contracts and validates them as one
// history: non-empty and no two records sharing valid_from.
func (f *ContractFactory) ParseHistory(jsonStr string) ([]worktime.ContractDetails, error) {
	var list []ContractJSON
	if err := json.Unmarshal([]byte(jsonStr), &list); err != nil {
		return nil, fmt.Errorf("failed to parse contract history JSON: %w", err)
	}
	history := make([]worktime.ContractDetails, 0, len(list))
	for i, cj := range list {
		c, err := f.FromJSON(cj)
		if err != nil {
			return nil, fmt.Errorf("contract %d: %w", i, err)
		}
		history = append(history, c)
	}
	if err := worktime.ValidateHistory(history); err != nil {
		return nil, err
	}
	return history, nil
}

// FromJSON converts ContractJSON to worktime.ContractDetails.
func (f *ContractFactory) FromJSON(cj ContractJSON) (worktime.ContractDetails, error) {
	validFrom, err := generic.ParseDate(cj.ValidFrom)
	if err != nil {
		return worktime.ContractDetails{}, &generic.FieldError{Field: "valid_from", Message: err.Error()}
	}

	c := worktime.ContractDetails{
		ValidFrom:          validFrom,
		EmploymentType:     cj.EmploymentType,
		TargetHoursModel:   parseModel(cj.TargetHoursModel),
		MonthlyTargetHours: cj.MonthlyTargetHours,
		DailyTargetHours:   cj.DailyTargetHours,
		VacationDays:       cj.VacationDays,
	}
	if cj.WeeklySchedule != nil {
		schedule, err := parseSchedule(cj.WeeklySchedule)
		if err != nil {
			return worktime.ContractDetails{}, err
		}
		c.WeeklySchedule = &schedule
	}

	if err := worktime.ValidateContract(c); err != nil {
		return worktime.ContractDetails{}, err
	}
	return c, nil
}

// ToJSON converts a contract record to ContractJSON.
func (f *ContractFactory) ToJSON(c worktime.ContractDetails) ContractJSON {
	cj := ContractJSON{
		ValidFrom:          c.ValidFrom.String(),
		EmploymentType:     c.EmploymentType,
		TargetHoursModel:   string(c.TargetHoursModel),
		MonthlyTargetHours: c.MonthlyTargetHours,
		DailyTargetHours:   c.DailyTargetHours,
		VacationDays:       c.VacationDays,
	}
	if c.WeeklySchedule != nil {
		cj.WeeklySchedule = make(map[string]decimal.Decimal, 7)
		for day, hours := range c.WeeklySchedule {
			if hours.IsZero() {
				continue
			}
			cj.WeeklySchedule[strings.ToLower(time.Weekday(day).String())] = hours
		}
	}
	return cj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseModel(s string) worktime.TargetHoursModel {
	switch strings.ToLower(s) {
	case "", "monthly":
		return worktime.ModelMonthly
	case "weekly":
		return worktime.ModelWeekly
	default:
		// Left as-is so ValidateContract reports it.
		return worktime.TargetHoursModel(s)
	}
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseSchedule(in map[string]decimal.Decimal) (worktime.WeeklySchedule, error) {
	var schedule worktime.WeeklySchedule
	for i := range schedule {
		schedule[i] = decimal.Zero
	}
	for name, hours := range in {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return schedule, &generic.FieldError{Field: "weekly_schedule", Message: fmt.Sprintf("unknown weekday %q", name)}
		}
		schedule[day] = hours
	}
	return schedule, nil
}
