package timeoff_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
)

// =============================================================================
// TEST SETUP
// =============================================================================

const emp = "emp-1"

func request(id string, kind timeoff.AbsenceType, from, to string) timeoff.AbsenceRequest {
	return timeoff.AbsenceRequest{
		ID:         id,
		EmployeeID: emp,
		Type:       kind,
		StartDate:  generic.MustParseDate(from),
		EndDate:    generic.MustParseDate(to),
		DayPortion: timeoff.PortionFull,
		Status:     timeoff.StatusApproved,
	}
}

func assertDays(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "expected %s days, got %s %v", want, got, msgAndArgs)
}

func newYearHolidays() generic.HolidayMap {
	m := generic.HolidayMap{}
	m.Add(generic.Holiday{Date: generic.MustParseDate("2024-01-01"), Name: "Neujahr"})
	return m
}

// =============================================================================
// ANNUAL COUNTS
// =============================================================================

func TestAnnualVacationTaken_SkipsWeekend(t *testing.T) {
	// GIVEN: Friday 2024-01-05 through Monday 2024-01-08
	requests := []timeoff.AbsenceRequest{request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-08")}

	// THEN: Two workdays
	assertDays(t, "2", timeoff.AnnualVacationTaken(emp, requests, 2024, generic.NoHolidays{}))
}

func TestAnnualVacationTaken_HalfDay(t *testing.T) {
	r := request("r1", timeoff.TypeVacation, "2024-01-10", "2024-01-10")
	r.DayPortion = timeoff.PortionAM

	assertDays(t, "0.5", timeoff.AnnualVacationTaken(emp, []timeoff.AbsenceRequest{r}, 2024, generic.NoHolidays{}))
}

func TestAnnualVacationTaken_IgnoresUnapprovedAndForeign(t *testing.T) {
	pending := request("r1", timeoff.TypeVacation, "2024-02-05", "2024-02-09")
	pending.Status = timeoff.StatusPending
	rejected := request("r2", timeoff.TypeVacation, "2024-02-12", "2024-02-16")
	rejected.Status = timeoff.StatusRejected
	foreign := request("r3", timeoff.TypeVacation, "2024-02-19", "2024-02-23")
	foreign.EmployeeID = "emp-2"
	sick := request("r4", timeoff.TypeSickLeave, "2024-02-26", "2024-02-27")

	requests := []timeoff.AbsenceRequest{pending, rejected, foreign, sick}

	assertDays(t, "0", timeoff.AnnualVacationTaken(emp, requests, 2024, generic.NoHolidays{}))
}

func TestAnnualSickDaysTaken_SpansYearBoundary(t *testing.T) {
	// GIVEN: Sick Thursday 2023-12-28 through Wednesday 2024-01-03, Jan 1 is a holiday
	requests := []timeoff.AbsenceRequest{request("r1", timeoff.TypeSickLeave, "2023-12-28", "2024-01-03")}
	holidays := newYearHolidays()

	// THEN: Each year counts only its own workdays
	assertDays(t, "2", timeoff.AnnualSickDaysTaken(emp, requests, 2023, holidays))
	assertDays(t, "2", timeoff.AnnualSickDaysTaken(emp, requests, 2024, holidays))
}

func TestAnnualSickDaysTaken_PortionIgnored(t *testing.T) {
	r := request("r1", timeoff.TypeSickLeave, "2024-03-04", "2024-03-04")
	r.DayPortion = timeoff.PortionPM

	assertDays(t, "1", timeoff.AnnualSickDaysTaken(emp, []timeoff.AbsenceRequest{r}, 2024, nil))
}

func TestAnnualVacationTaken_OverlappingRequestsCountOnce(t *testing.T) {
	requests := []timeoff.AbsenceRequest{
		request("r1", timeoff.TypeVacation, "2024-04-01", "2024-04-03"),
		request("r2", timeoff.TypeVacation, "2024-04-03", "2024-04-04"),
	}

	assertDays(t, "4", timeoff.AnnualVacationTaken(emp, requests, 2024, generic.NoHolidays{}))
}

// =============================================================================
// MONTHLY BREAKDOWN
// =============================================================================

func TestMonthlyAbsenceBreakdown(t *testing.T) {
	requests := []timeoff.AbsenceRequest{
		request("r1", timeoff.TypeVacation, "2024-02-29", "2024-03-01"),
		request("r2", timeoff.TypeTimeOff, "2024-03-04", "2024-03-05"),
		request("r3", timeoff.TypeSickLeave, "2024-01-01", "2024-01-02"),
	}

	months := timeoff.MonthlyAbsenceBreakdown(emp, requests, 2024, newYearHolidays())

	require.Len(t, months, 12)
	assert.Equal(t, time.January, months[0].Month)
	assert.Equal(t, time.December, months[11].Month)

	assertDays(t, "1", months[0].Sick, "january")
	assertDays(t, "1", months[1].Vacation, "february")
	assertDays(t, "1", months[2].Vacation, "march")
	assertDays(t, "2", months[2].TimeOff, "march")
	assertDays(t, "0", months[3].Vacation, "april")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestAbsenceRequest_Validate(t *testing.T) {
	assert.NoError(t, request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-08").Validate())

	halfSpan := request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-08")
	halfSpan.DayPortion = timeoff.PortionAM
	assert.ErrorIs(t, halfSpan.Validate(), generic.ErrInvalidInput)

	reversed := request("r1", timeoff.TypeVacation, "2024-01-08", "2024-01-05")
	assert.ErrorIs(t, reversed.Validate(), generic.ErrInvalidPeriod)

	unknown := request("r1", "parental", "2024-01-05", "2024-01-05")
	assert.ErrorIs(t, unknown.Validate(), generic.ErrInvalidInput)
}

func TestDayFactor(t *testing.T) {
	vacation := request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-05")
	assertDays(t, "1", vacation.DayFactor())

	vacation.DayPortion = timeoff.PortionPM
	assertDays(t, "0.5", vacation.DayFactor())

	timeOff := request("r2", timeoff.TypeTimeOff, "2024-01-05", "2024-01-05")
	timeOff.DayPortion = timeoff.PortionAM
	assertDays(t, "1", timeOff.DayFactor())
}
