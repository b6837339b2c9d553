package worktime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/worktime-engine/worktime"
)

func TestRequiredBreakMinutes_Thresholds(t *testing.T) {
	cases := []struct {
		hours string
		want  int
	}{
		{"0", 0},
		{"6", 0},
		{"6.01", 30},
		{"9", 30},
		{"9.01", 45},
		{"12", 45},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, worktime.RequiredBreakMinutes(h(tc.hours)), tc.hours)
	}
}

func TestApplyAutomaticBreak_TenHourShift(t *testing.T) {
	// GIVEN: 08:00-18:00 with deduction enabled
	emp := standardEmployee()
	emp.AutomaticBreakDeduction = true

	// WHEN: No break was recorded
	out := worktime.ApplyAutomaticBreak(entry("e1", "2024-01-02", 8, 18, 0), emp)
	// THEN: The statutory 45 minutes are applied
	assert.Equal(t, 45, out.BreakDurationMinutes)

	// WHEN: A longer break was recorded
	out = worktime.ApplyAutomaticBreak(entry("e1", "2024-01-02", 8, 18, 60), emp)
	// THEN: It is kept
	assert.Equal(t, 60, out.BreakDurationMinutes)
}

func TestApplyAutomaticBreak_IdempotentAndMonotonic(t *testing.T) {
	emp := standardEmployee()
	emp.AutomaticBreakDeduction = true

	for _, in := range []worktime.TimeEntry{
		entry("a", "2024-01-02", 8, 12, 0),
		entry("b", "2024-01-02", 8, 15, 10),
		entry("c", "2024-01-02", 7, 19, 30),
		entry("d", "2024-01-02", 7, 19, 90),
	} {
		once := worktime.ApplyAutomaticBreak(in, emp)
		twice := worktime.ApplyAutomaticBreak(once, emp)
		assert.Equal(t, once, twice, in.ID)
		assert.GreaterOrEqual(t, once.BreakDurationMinutes, in.BreakDurationMinutes, in.ID)
	}
}

func TestApplyAutomaticBreak_Disabled_LeavesEntryUnchanged(t *testing.T) {
	emp := standardEmployee()
	in := entry("e1", "2024-01-02", 8, 18, 0)

	assert.Equal(t, in, worktime.ApplyAutomaticBreak(in, emp))
}

func TestApplyAutomaticBreak_JustOverSixHours(t *testing.T) {
	emp := standardEmployee()
	emp.AutomaticBreakDeduction = true
	in := entry("e1", "2024-01-02", 8, 14, 0)
	in.End = in.End.Add(time.Minute)

	assert.Equal(t, 30, worktime.ApplyAutomaticBreak(in, emp).BreakDurationMinutes)
}
