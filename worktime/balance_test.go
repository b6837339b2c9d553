package worktime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// BALANCE SCENARIOS
// =============================================================================

func TestBalance_FirstDayWorkedInFull(t *testing.T) {
	// GIVEN: 160h/month, one 8h entry on the first day
	emp := standardEmployee()
	in := worktime.Inputs{Entries: []worktime.TimeEntry{entry("e1", "2024-01-01", 8, 16, 0)}}

	// WHEN: Balance at the first day
	got, err := worktime.Balance(emp, date("2024-01-01"), in)

	// THEN: The whole month is already owed
	require.NoError(t, err)
	assertHours(t, "-152", got)
}

func TestBalance_FirstDayIsAHoliday(t *testing.T) {
	// GIVEN: No entries, the first day is a holiday
	emp := standardEmployee()
	in := worktime.Inputs{Holidays: holidays("2024-01-01")}

	got, err := worktime.Balance(emp, date("2024-01-01"), in)

	// THEN: Only the holiday credit offsets the month
	require.NoError(t, err)
	assertHours(t, "-152", got)
}

func TestBalance_BeforeFirstWorkDay_IsStartingBalance(t *testing.T) {
	emp := standardEmployee()
	emp.FirstWorkDay = date("2024-02-01")
	emp.StartingTimeBalanceHours = h("10")
	in := worktime.Inputs{Entries: []worktime.TimeEntry{entry("e1", "2024-01-15", 8, 16, 0)}}

	got, err := worktime.Balance(emp, date("2024-01-31"), in)

	require.NoError(t, err)
	assertHours(t, "10", got)
}

func TestBalance_EmptyContractHistory_IsDataIntegrityError(t *testing.T) {
	emp := standardEmployee()
	emp.ContractHistory = nil

	for _, day := range []string{"2023-06-01", "2024-03-01"} {
		_, err := worktime.Balance(emp, date(day), worktime.Inputs{})
		assert.ErrorIs(t, err, generic.ErrDataIntegrity, day)
	}
}

func TestBalance_StartingBalanceIsCarried(t *testing.T) {
	emp := standardEmployee()
	emp.StartingTimeBalanceHours = h("12.5")

	got, err := worktime.Balance(emp, date("2024-01-02"), worktime.Inputs{})

	require.NoError(t, err)
	assertHours(t, "-147.5", got)
}

// =============================================================================
// ABSENCE CREDITS
// =============================================================================

func TestBalance_ApprovedVacationCreditsScheduledHours(t *testing.T) {
	emp := standardEmployee()
	in := worktime.Inputs{Absences: []timeoff.AbsenceRequest{
		absence("a1", timeoff.TypeVacation, "2024-01-02", "2024-01-03", timeoff.StatusApproved),
	}}

	got, err := worktime.Balance(emp, date("2024-01-03"), in)

	require.NoError(t, err)
	assertHours(t, "-144", got)
}

func TestBalance_HalfDayVacationCreditsHalf(t *testing.T) {
	emp := standardEmployee()
	a := absence("a1", timeoff.TypeVacation, "2024-01-02", "2024-01-02", timeoff.StatusApproved)
	a.DayPortion = timeoff.PortionAM
	in := worktime.Inputs{Absences: []timeoff.AbsenceRequest{a}}

	got, err := worktime.Balance(emp, date("2024-01-02"), in)

	require.NoError(t, err)
	assertHours(t, "-156", got)
}

func TestBalance_PartialSickLeaveCreditsFullDay(t *testing.T) {
	emp := standardEmployee()
	a := absence("a1", timeoff.TypeSickLeave, "2024-01-02", "2024-01-02", timeoff.StatusApproved)
	a.DayPortion = timeoff.PortionPM
	in := worktime.Inputs{Absences: []timeoff.AbsenceRequest{a}}

	got, err := worktime.Balance(emp, date("2024-01-02"), in)

	require.NoError(t, err)
	assertHours(t, "-152", got)
}

func TestBalance_HolidayTakesPrecedenceOverAbsence(t *testing.T) {
	emp := standardEmployee()
	in := worktime.Inputs{
		Holidays: holidays("2024-01-01"),
		Absences: []timeoff.AbsenceRequest{
			absence("a1", timeoff.TypeVacation, "2024-01-01", "2024-01-01", timeoff.StatusApproved),
		},
	}

	credits, err := worktime.Credits(emp, date("2024-01-01"), in)

	require.NoError(t, err)
	assertHours(t, "8", credits.Holiday)
	assertHours(t, "0", credits.Vacation)
	assertHours(t, "8", credits.Total())
}

func TestBalance_NotCredited(t *testing.T) {
	emp := standardEmployee()
	cases := map[string]timeoff.AbsenceRequest{
		"time off":         absence("a1", timeoff.TypeTimeOff, "2024-01-02", "2024-01-02", timeoff.StatusApproved),
		"pending vacation": absence("a2", timeoff.TypeVacation, "2024-01-02", "2024-01-02", timeoff.StatusPending),
		"rejected sick":    absence("a3", timeoff.TypeSickLeave, "2024-01-02", "2024-01-02", timeoff.StatusRejected),
		"weekend vacation": absence("a4", timeoff.TypeVacation, "2024-01-06", "2024-01-07", timeoff.StatusApproved),
	}
	for name, a := range cases {
		got, err := worktime.Balance(emp, date("2024-01-07"), worktime.Inputs{Absences: []timeoff.AbsenceRequest{a}})
		require.NoError(t, err, name)
		assertHours(t, "-160", got, name)
	}
}

func TestBalance_OtherEmployeesRecordsIgnored(t *testing.T) {
	emp := standardEmployee()
	foreign := entry("e1", "2024-01-02", 8, 16, 0)
	foreign.EmployeeID = "emp-2"
	foreignAbsence := absence("a1", timeoff.TypeVacation, "2024-01-03", "2024-01-03", timeoff.StatusApproved)
	foreignAbsence.EmployeeID = "emp-2"
	in := worktime.Inputs{
		Entries:     []worktime.TimeEntry{foreign},
		Absences:    []timeoff.AbsenceRequest{foreignAbsence},
		Adjustments: []worktime.Adjustment{{EmployeeID: "emp-2", Date: date("2024-01-02"), Type: worktime.AdjustmentCorrection, Hours: h("5")}},
	}

	got, err := worktime.Balance(emp, date("2024-01-31"), in)

	require.NoError(t, err)
	assertHours(t, "-160", got)
}

// =============================================================================
// CONTRACTS & DEBITS
// =============================================================================

func TestBalance_ContractChangeMidMonth(t *testing.T) {
	// GIVEN: 8h/day until Jan 2, 4h/day (80h/month) from Jan 3
	emp := standardEmployee()
	emp.ContractHistory = append(emp.ContractHistory, monthlyContract("2024-01-03", "80", "4"))
	in := worktime.Inputs{Absences: []timeoff.AbsenceRequest{
		absence("a1", timeoff.TypeVacation, "2024-01-02", "2024-01-04", timeoff.StatusApproved),
	}}

	// THEN: Daily credits follow the contract of each day
	got, err := worktime.Balance(emp, date("2024-01-04"), in)
	require.NoError(t, err)
	assertHours(t, "-144", got)

	// THEN: January is debited per the contract on Jan 1, February per Feb 1
	got, err = worktime.Balance(emp, date("2024-02-01"), in)
	require.NoError(t, err)
	assertHours(t, "-224", got)
}

func TestPayrollDebit_NotProrated(t *testing.T) {
	emp := standardEmployee()
	emp.FirstWorkDay = date("2024-01-15")

	debit, err := worktime.PayrollDebit(emp, date("2024-03-10"))
	require.NoError(t, err)
	assertHours(t, "480", debit)

	got, err := worktime.Balance(emp, date("2024-01-15"), worktime.Inputs{})
	require.NoError(t, err)
	assertHours(t, "-160", got)
}

func TestBalance_Adjustments(t *testing.T) {
	emp := standardEmployee()
	in := worktime.Inputs{Adjustments: []worktime.Adjustment{
		worktime.NewPayout(empID, date("2024-01-01"), h("10"), "december overtime"),
		{EmployeeID: empID, Date: date("2024-01-02"), Type: worktime.AdjustmentCorrection, Hours: h("5")},
		{EmployeeID: empID, Date: date("2024-02-02"), Type: worktime.AdjustmentCorrection, Hours: h("100")},
	}}

	got, err := worktime.Balance(emp, date("2024-01-31"), in)

	require.NoError(t, err)
	assertHours(t, "-165", got)
}

func TestBalance_WeeklyModel(t *testing.T) {
	// GIVEN: Mon-Thu 10h, Friday free, holidays on Monday and Friday
	schedule := worktime.WeeklySchedule{h("0"), h("10"), h("10"), h("10"), h("10"), h("0"), h("0")}
	emp := standardEmployee()
	emp.ContractHistory = []worktime.ContractDetails{{
		ValidFrom:          date("2024-01-01"),
		TargetHoursModel:   worktime.ModelWeekly,
		MonthlyTargetHours: h("173"),
		WeeklySchedule:     &schedule,
		VacationDays:       h("30"),
	}}
	in := worktime.Inputs{Holidays: holidays("2024-01-01", "2024-01-05")}

	got, err := worktime.Balance(emp, date("2024-01-05"), in)

	// THEN: Only the Monday holiday credits hours
	require.NoError(t, err)
	assertHours(t, "-163", got)
}

func TestBalance_EntriesAttributedInEmployeeLocation(t *testing.T) {
	// GIVEN: An employee one hour east of UTC, an entry at 23:30 UTC on Jan 31
	emp := standardEmployee()
	emp.Location = time.FixedZone("CET", 3600)
	late := worktime.TimeEntry{
		ID:         "e1",
		EmployeeID: empID,
		Start:      time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC),
		End:        time.Date(2024, time.February, 1, 1, 30, 0, 0, time.UTC),
	}
	in := worktime.Inputs{Entries: []worktime.TimeEntry{late}}

	// THEN: It belongs to February 1st locally
	jan, err := worktime.Balance(emp, date("2024-01-31"), in)
	require.NoError(t, err)
	assertHours(t, "-160", jan)

	feb, err := worktime.Balance(emp, date("2024-02-01"), in)
	require.NoError(t, err)
	assertHours(t, "-318", feb)
}

// =============================================================================
// ADDITIVITY
// =============================================================================

func TestBalance_Additivity(t *testing.T) {
	emp := standardEmployee()
	in := worktime.Inputs{
		Entries: []worktime.TimeEntry{
			entry("e1", "2024-01-12", 8, 16, 0),
			entry("e2", "2024-01-15", 8, 14, 30),
			entry("e3", "2024-02-02", 9, 17, 0),
		},
		Absences: []timeoff.AbsenceRequest{
			absence("a1", timeoff.TypeVacation, "2024-01-29", "2024-01-30", timeoff.StatusApproved),
		},
	}

	cases := []struct {
		from, to string
		delta    string
	}{
		// Same month: only credits inside (from, to]
		{"2024-01-10", "2024-01-20", "13.5"},
		// Crossing into February adds its target
		{"2024-01-20", "2024-02-05", "-136"},
	}
	for _, tc := range cases {
		b1, err := worktime.Balance(emp, date(tc.from), in)
		require.NoError(t, err)
		b2, err := worktime.Balance(emp, date(tc.to), in)
		require.NoError(t, err)
		assertHours(t, tc.delta, b2.Sub(b1), tc.from+".."+tc.to)
	}
}

func TestBalanceSeries_MonthEnds(t *testing.T) {
	emp := standardEmployee()
	in := worktime.Inputs{Entries: []worktime.TimeEntry{entry("e1", "2024-02-05", 8, 18, 0)}}

	series, err := worktime.BalanceSeries(emp, date("2024-01-10"), date("2024-03-02"), in)

	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, date("2024-01-31"), series[0].Date)
	assert.Equal(t, date("2024-03-31"), series[2].Date)
	assertHours(t, "-160", series[0].Balance)
	assertHours(t, "-310", series[1].Balance)
	assertHours(t, "-470", series[2].Balance)

	for _, p := range series {
		want, err := worktime.Balance(emp, p.Date, in)
		require.NoError(t, err)
		assert.True(t, want.Equal(p.Balance), p.Date.String())
	}
}
