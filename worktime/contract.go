package worktime

import (
	"sort"

	"github.com/warp/worktime-engine/generic"
)

// =============================================================================
// CONTRACT RESOLUTION - Effective-dated lookup
// =============================================================================

// ResolveContract returns the record with the latest ValidFrom on or before
// date. If every record starts after date, the oldest record is returned.
// Records sharing a ValidFrom resolve to the one that appears last in
// history.
func ResolveContract(history []ContractDetails, date generic.TimePoint) (ContractDetails, error) {
	if len(history) == 0 {
		return ContractDetails{}, generic.ErrEmptyContractHistory
	}
	return newContractTimeline(history).at(date), nil
}

// ContractOn resolves the employee's contract for date.
func (e Employee) ContractOn(date generic.TimePoint) (ContractDetails, error) {
	c, err := ResolveContract(e.ContractHistory, date)
	if err != nil {
		return ContractDetails{}, e.integrityError(err)
	}
	return c, nil
}

func (e Employee) timeline() (contractTimeline, error) {
	if len(e.ContractHistory) == 0 {
		return nil, e.integrityError(generic.ErrEmptyContractHistory)
	}
	return newContractTimeline(e.ContractHistory), nil
}

func (e Employee) integrityError(err error) error {
	return &generic.DataIntegrityError{
		EmployeeID: e.ID,
		Reason:     err.Error(),
		Err:        err,
	}
}

// contractTimeline is a contract history sorted descending by ValidFrom,
// built once per computation so day loops don't re-sort.
type contractTimeline []ContractDetails

func newContractTimeline(history []ContractDetails) contractTimeline {
	sorted := make(contractTimeline, len(history))
	// Reverse first so the stable sort keeps later-inserted ties in front.
	for i, c := range history {
		sorted[len(history)-1-i] = c
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ValidFrom.After(sorted[j].ValidFrom)
	})
	return sorted
}

func (t contractTimeline) at(date generic.TimePoint) ContractDetails {
	for _, c := range t {
		if c.ValidFrom.BeforeOrEqual(date) {
			return c
		}
	}
	oldest := t[len(t)-1].ValidFrom
	for _, c := range t {
		if c.ValidFrom.Equal(oldest) {
			return c
		}
	}
	return t[len(t)-1]
}
