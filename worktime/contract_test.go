package worktime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/worktime"
)

func TestResolveContract_LatestValidFromWins(t *testing.T) {
	// GIVEN: An unordered history with three records
	history := []worktime.ContractDetails{
		monthlyContract("2024-06-01", "120", "6"),
		monthlyContract("2023-01-01", "160", "8"),
		monthlyContract("2024-01-01", "140", "7"),
	}

	cases := map[string]string{
		"2023-01-01": "160",
		"2023-12-31": "160",
		"2024-01-01": "140",
		"2024-05-31": "140",
		"2024-06-01": "120",
		"2030-01-01": "120",
	}
	for day, want := range cases {
		c, err := worktime.ResolveContract(history, date(day))
		require.NoError(t, err)
		assertHours(t, want, c.MonthlyTargetHours, day)
	}
}

func TestResolveContract_BeforeAllRecords_FallsBackToOldest(t *testing.T) {
	history := []worktime.ContractDetails{
		monthlyContract("2024-06-01", "120", "6"),
		monthlyContract("2024-01-01", "140", "7"),
	}

	c, err := worktime.ResolveContract(history, date("2020-01-01"))

	require.NoError(t, err)
	assert.Equal(t, date("2024-01-01"), c.ValidFrom)
}

func TestResolveContract_EmptyHistory_IsAnError(t *testing.T) {
	_, err := worktime.ResolveContract(nil, date("2024-01-01"))

	assert.ErrorIs(t, err, generic.ErrEmptyContractHistory)
}

func TestResolveContract_SameValidFrom_LastInsertedWins(t *testing.T) {
	// GIVEN: Two records with the same ValidFrom
	history := []worktime.ContractDetails{
		monthlyContract("2024-01-01", "160", "8"),
		monthlyContract("2024-01-01", "100", "5"),
	}

	for _, day := range []string{"2024-03-01", "2023-01-01"} {
		c, err := worktime.ResolveContract(history, date(day))
		require.NoError(t, err)
		assertHours(t, "100", c.MonthlyTargetHours, day)
	}
}

func TestContractOn_EmptyHistory_NamesEmployee(t *testing.T) {
	emp := standardEmployee()
	emp.ContractHistory = nil

	_, err := emp.ContractOn(date("2024-01-01"))

	require.Error(t, err)
	var integrity *generic.DataIntegrityError
	require.True(t, errors.As(err, &integrity))
	assert.Equal(t, empID, integrity.EmployeeID)
	assert.ErrorIs(t, err, generic.ErrDataIntegrity)
	assert.ErrorIs(t, err, generic.ErrEmptyContractHistory)
	assert.True(t, generic.IsDataIntegrity(err))
}

func TestScheduledHours_MonthlyModel(t *testing.T) {
	c := monthlyContract("2024-01-01", "160", "8")

	assertHours(t, "8", worktime.ScheduledHours(c, date("2024-01-01")), "monday")
	assertHours(t, "8", worktime.ScheduledHours(c, date("2024-01-05")), "friday")
	assertHours(t, "0", worktime.ScheduledHours(c, date("2024-01-06")), "saturday")
	assertHours(t, "0", worktime.ScheduledHours(c, date("2024-01-07")), "sunday")
}

func TestScheduledHours_WeeklyModel(t *testing.T) {
	schedule := worktime.WeeklySchedule{h("0"), h("10"), h("10"), h("10"), h("10"), h("0"), h("4")}
	c := worktime.ContractDetails{
		ValidFrom:          date("2024-01-01"),
		TargetHoursModel:   worktime.ModelWeekly,
		MonthlyTargetHours: h("173"),
		WeeklySchedule:     &schedule,
	}

	assertHours(t, "10", worktime.ScheduledHours(c, date("2024-01-01")), "monday")
	assertHours(t, "0", worktime.ScheduledHours(c, date("2024-01-05")), "friday")
	assertHours(t, "4", worktime.ScheduledHours(c, date("2024-01-06")), "saturday")
	assertHours(t, "44", schedule.Total())
}
