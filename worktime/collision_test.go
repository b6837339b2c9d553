package worktime_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
)

func TestDetectCollision_ApprovedAbsence(t *testing.T) {
	// GIVEN: An approved absence on 2024-01-10
	absences := []timeoff.AbsenceRequest{
		absence("a1", timeoff.TypeVacation, "2024-01-10", "2024-01-10", timeoff.StatusApproved),
	}

	// WHEN: Proposing 10:00-12:00 that day
	c := worktime.DetectCollision(at("2024-01-10", 10, 0), at("2024-01-10", 12, 0), nil, absences, "")

	// THEN: The absence is reported
	require.NotNil(t, c)
	assert.Equal(t, worktime.ConflictAbsence, c.Type)
	assert.Equal(t, "a1", c.Absence.ID)
	assert.Nil(t, c.Entry)
}

func TestDetectCollision_EntryOverlap(t *testing.T) {
	entries := []worktime.TimeEntry{entry("e1", "2024-01-10", 8, 12, 0)}

	c := worktime.DetectCollision(at("2024-01-10", 11, 0), at("2024-01-10", 13, 0), entries, nil, "")

	require.NotNil(t, c)
	assert.Equal(t, worktime.ConflictEntry, c.Type)
	assert.Equal(t, "e1", c.Entry.ID)
}

func TestDetectCollision_TouchingIntervals_DoNotOverlap(t *testing.T) {
	entries := []worktime.TimeEntry{entry("e1", "2024-01-10", 8, 12, 0)}

	assert.Nil(t, worktime.DetectCollision(at("2024-01-10", 12, 0), at("2024-01-10", 16, 0), entries, nil, ""))
	assert.Nil(t, worktime.DetectCollision(at("2024-01-10", 6, 0), at("2024-01-10", 8, 0), entries, nil, ""))
}

func TestDetectCollision_IgnoresEditedEntry(t *testing.T) {
	entries := []worktime.TimeEntry{entry("e1", "2024-01-10", 8, 12, 0)}

	assert.Nil(t, worktime.DetectCollision(at("2024-01-10", 9, 0), at("2024-01-10", 13, 0), entries, nil, "e1"))
}

func TestDetectCollision_OnlySameDayEntriesChecked(t *testing.T) {
	entries := []worktime.TimeEntry{entry("e1", "2024-01-09", 8, 12, 0)}

	assert.Nil(t, worktime.DetectCollision(at("2024-01-10", 8, 0), at("2024-01-10", 12, 0), entries, nil, ""))
}

func TestDetectCollision_RejectedAbsenceIgnored_PendingBlocks(t *testing.T) {
	rejected := []timeoff.AbsenceRequest{
		absence("a1", timeoff.TypeVacation, "2024-01-08", "2024-01-12", timeoff.StatusRejected),
	}
	assert.Nil(t, worktime.DetectCollision(at("2024-01-10", 8, 0), at("2024-01-10", 12, 0), nil, rejected, ""))

	pending := []timeoff.AbsenceRequest{
		absence("a2", timeoff.TypeTimeOff, "2024-01-08", "2024-01-12", timeoff.StatusPending),
	}
	c := worktime.DetectCollision(at("2024-01-10", 8, 0), at("2024-01-10", 12, 0), nil, pending, "")
	require.NotNil(t, c)
	assert.Equal(t, "a2", c.Absence.ID)
}

func TestDetectCollision_EntryCheckedBeforeAbsence(t *testing.T) {
	entries := []worktime.TimeEntry{entry("e1", "2024-01-10", 8, 12, 0)}
	absences := []timeoff.AbsenceRequest{
		absence("a1", timeoff.TypeSickLeave, "2024-01-10", "2024-01-10", timeoff.StatusApproved),
	}

	c := worktime.DetectCollision(at("2024-01-10", 9, 0), at("2024-01-10", 10, 0), entries, absences, "")

	require.NotNil(t, c)
	assert.Equal(t, worktime.ConflictEntry, c.Type)
}

func TestEmployeeDetectCollision_UsesEmployeeCalendar(t *testing.T) {
	// GIVEN: An employee five hours behind UTC with approved vacation on Jan 10
	emp := standardEmployee()
	emp.Location = time.FixedZone("EST", -5*3600)
	in := worktime.Inputs{Absences: []timeoff.AbsenceRequest{
		absence("a1", timeoff.TypeVacation, "2024-01-10", "2024-01-10", timeoff.StatusApproved),
	}}

	// WHEN: An interval stamped in UTC on Jan 11 (21:00-22:00 on Jan 10 locally) is checked
	start := at("2024-01-11", 2, 0)
	end := at("2024-01-11", 3, 0)
	c := emp.DetectCollision(start, end, in, "")

	// THEN: The vacation day blocks it
	require.NotNil(t, c)
	assert.Equal(t, worktime.ConflictAbsence, c.Type)
	assert.Equal(t, "a1", c.Absence.ID)

	// AND: The same instant is free for a UTC employee
	assert.Nil(t, standardEmployee().DetectCollision(start, end, in, ""))
}

func TestEmployeeDetectCollision_SameDayEntriesInEmployeeCalendar(t *testing.T) {
	// GIVEN: An entry 20:00-21:00 on Jan 10 in EST, stored in UTC
	emp := standardEmployee()
	emp.Location = time.FixedZone("EST", -5*3600)
	in := worktime.Inputs{Entries: []worktime.TimeEntry{{
		ID: "e1", EmployeeID: empID, Start: at("2024-01-11", 1, 0), End: at("2024-01-11", 2, 0),
	}}}

	// WHEN: An overlapping interval is proposed with a local offset
	start := time.Date(2024, time.January, 10, 20, 30, 0, 0, emp.Location)

	// THEN: It collides with the stored entry
	c := emp.DetectCollision(start, start.Add(time.Hour), in, "")
	require.NotNil(t, c)
	assert.Equal(t, "e1", c.Entry.ID)
}
