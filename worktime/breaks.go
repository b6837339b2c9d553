package worktime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statutory minimum breaks by gross shift length.
var (
	sixHours  = decimal.NewFromInt(6)
	nineHours = decimal.NewFromInt(9)
)

// RequiredBreakMinutes returns the minimum break for a shift of
// durationHours: none up to 6h, 30 minutes up to 9h, 45 minutes beyond.
func RequiredBreakMinutes(durationHours decimal.Decimal) int {
	switch {
	case durationHours.GreaterThan(nineHours):
		return 45
	case durationHours.GreaterThan(sixHours):
		return 30
	default:
		return 0
	}
}

// ApplyAutomaticBreak raises the entry's break to the statutory minimum when
// the employee has automatic deduction enabled. A longer recorded break is
// kept, so applying it again changes nothing.
func ApplyAutomaticBreak(entry TimeEntry, employee Employee) TimeEntry {
	if !employee.AutomaticBreakDeduction {
		return entry
	}
	hours := decimal.NewFromInt(int64(entry.Duration() / time.Second)).Div(secondsPerHour)
	if required := RequiredBreakMinutes(hours); required > entry.BreakDurationMinutes {
		entry.BreakDurationMinutes = required
	}
	return entry
}
