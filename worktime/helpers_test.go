package worktime_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const empID = "emp-1"

func h(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(s string) generic.TimePoint {
	return generic.MustParseDate(s)
}

func assertHours(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, h(want).Equal(got), "expected %s, got %s %v", want, got.String(), msgAndArgs)
}

func monthlyContract(validFrom string, monthly, daily string) worktime.ContractDetails {
	return worktime.ContractDetails{
		ValidFrom:          date(validFrom),
		EmploymentType:     "full_time",
		TargetHoursModel:   worktime.ModelMonthly,
		MonthlyTargetHours: h(monthly),
		DailyTargetHours:   h(daily),
		VacationDays:       h("30"),
	}
}

// standardEmployee: 160h/month, 8h/day, starts Monday 2024-01-01 with a zero balance.
func standardEmployee() worktime.Employee {
	return worktime.Employee{
		ID:                       empID,
		Name:                     "Ada",
		FirstWorkDay:             date("2024-01-01"),
		StartingTimeBalanceHours: decimal.Zero,
		ContractHistory:          []worktime.ContractDetails{monthlyContract("2024-01-01", "160", "8")},
	}
}

func at(day string, hour, minute int) time.Time {
	d := date(day)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func entry(id, day string, fromHour, toHour, breakMinutes int) worktime.TimeEntry {
	return worktime.TimeEntry{
		ID:                   id,
		EmployeeID:           empID,
		Start:                at(day, fromHour, 0),
		End:                  at(day, toHour, 0),
		BreakDurationMinutes: breakMinutes,
	}
}

func absence(id string, kind timeoff.AbsenceType, from, to string, status timeoff.RequestStatus) timeoff.AbsenceRequest {
	return timeoff.AbsenceRequest{
		ID:         id,
		EmployeeID: empID,
		Type:       kind,
		StartDate:  date(from),
		EndDate:    date(to),
		DayPortion: timeoff.PortionFull,
		Status:     status,
	}
}

func holidays(days ...string) generic.HolidayMap {
	m := generic.HolidayMap{}
	for _, d := range days {
		m.Add(generic.Holiday{Date: date(d), Name: "Holiday " + d})
	}
	return m
}
