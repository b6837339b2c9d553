package worktime

import (
	"time"

	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
)

// =============================================================================
// COLLISION DETECTION - Does a proposed interval clash with existing data?
// =============================================================================

type ConflictType string

const (
	ConflictEntry   ConflictType = "entry"
	ConflictAbsence ConflictType = "absence"
)

// Conflict is the first existing record a proposed interval overlaps.
// Exactly one of Entry and Absence is set, matching Type.
type Conflict struct {
	Type    ConflictType
	Entry   *TimeEntry
	Absence *timeoff.AbsenceRequest
}

// DetectCollision checks [start, end) against the entries that start on the
// same calendar day (skipping ignoreID, the entry being edited) and then
// against every absence that is not rejected. The first match wins and nil
// means the interval is free.
func DetectCollision(start, end time.Time, entries []TimeEntry, absences []timeoff.AbsenceRequest, ignoreID string) *Conflict {
	day := generic.DateOf(start)

	for i := range entries {
		e := entries[i]
		if ignoreID != "" && e.ID == ignoreID {
			continue
		}
		if !generic.DateIn(e.Start, start.Location()).Equal(day) {
			continue
		}
		if start.Before(e.End) && end.After(e.Start) {
			return &Conflict{Type: ConflictEntry, Entry: &e}
		}
	}

	span := generic.Period{Start: day, End: generic.DateIn(end, start.Location())}
	for i := range absences {
		a := absences[i]
		if a.IsRejected() {
			continue
		}
		if a.Period().Overlaps(span) {
			return &Conflict{Type: ConflictAbsence, Absence: &a}
		}
	}
	return nil
}

// DetectCollision runs DetectCollision over the employee's snapshot with the
// interval read in the employee's zone, so calendar days match the ones
// Credits uses.
func (e Employee) DetectCollision(start, end time.Time, in Inputs, ignoreID string) *Conflict {
	loc := e.Zone()
	return DetectCollision(start.In(loc), end.In(loc), in.Entries, in.Absences, ignoreID)
}
