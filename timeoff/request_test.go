package timeoff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
)

func TestApprove_FromPending(t *testing.T) {
	r := request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-05")
	r.Status = timeoff.StatusPending

	approved, err := timeoff.Approve(r)

	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusApproved, approved.Status)
	assert.Equal(t, timeoff.StatusPending, r.Status, "input is not mutated")
}

func TestReject_FromPending(t *testing.T) {
	r := request("r1", timeoff.TypeSickLeave, "2024-01-05", "2024-01-05")
	r.Status = timeoff.StatusPending

	rejected, err := timeoff.Reject(r)

	require.NoError(t, err)
	assert.True(t, rejected.IsRejected())
}

func TestTransitions_TerminalStates(t *testing.T) {
	for _, status := range []timeoff.RequestStatus{timeoff.StatusApproved, timeoff.StatusRejected} {
		r := request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-05")
		r.Status = status

		_, err := timeoff.Approve(r)
		assert.ErrorIs(t, err, generic.ErrInvalidTransition, string(status))

		_, err = timeoff.Reject(r)
		assert.ErrorIs(t, err, generic.ErrInvalidTransition, string(status))
	}
}

func TestForEmployee(t *testing.T) {
	mine := request("r1", timeoff.TypeVacation, "2024-01-05", "2024-01-05")
	theirs := request("r2", timeoff.TypeVacation, "2024-01-05", "2024-01-05")
	theirs.EmployeeID = "emp-2"

	got := timeoff.ForEmployee([]timeoff.AbsenceRequest{mine, theirs}, emp)

	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}
