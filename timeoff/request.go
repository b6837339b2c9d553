package timeoff

import (
	"fmt"

	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// REQUEST LIFECYCLE
// =============================================================================
//
//   pending ──▶ approved
//      │
//      └─────▶ rejected
//
// approved and rejected are terminal. Only approved requests are credited
// or counted; pending requests still block overlapping entries.

// Approve moves a pending request to approved.
func Approve(r AbsenceRequest) (AbsenceRequest, error) {
	return transition(r, StatusApproved)
}

// Reject moves a pending request to rejected.
func Reject(r AbsenceRequest) (AbsenceRequest, error) {
	return transition(r, StatusRejected)
}

func transition(r AbsenceRequest, to RequestStatus) (AbsenceRequest, error) {
	if r.Status != StatusPending {
		return r, fmt.Errorf("request %s is %s, cannot become %s: %w", r.ID, r.Status, to, generic.ErrInvalidTransition)
	}
	r.Status = to
	return r, nil
}

// ForEmployee keeps the requests that belong to employeeID.
func ForEmployee(requests []AbsenceRequest, employeeID string) []AbsenceRequest {
	var out []AbsenceRequest
	for _, r := range requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out
}
