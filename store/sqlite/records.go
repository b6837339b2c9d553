package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// TIME ENTRIES
// =============================================================================

// SaveTimeEntry inserts or replaces an entry.
func (s *Store) SaveTimeEntry(ctx context.Context, e worktime.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO time_entries (id, employee_id, start_at, end_at, break_minutes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			break_minutes = excluded.break_minutes
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.EmployeeID,
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339),
		e.BreakDurationMinutes, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}
	return nil
}

// GetTimeEntry returns one entry.
func (s *Store) GetTimeEntry(ctx context.Context, id string) (worktime.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, employee_id, start_at, end_at, break_minutes FROM time_entries WHERE id = ?", id)
	e, err := scanTimeEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, generic.ErrRecordNotFound
	}
	return e, err
}

// DeleteTimeEntry removes an entry.
func (s *Store) DeleteTimeEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM time_entries WHERE id = ?", id)
	return expectRow(res, err, generic.ErrRecordNotFound)
}

// ListTimeEntries returns the employee's entries ordered by start.
func (s *Store) ListTimeEntries(ctx context.Context, employeeID string) ([]worktime.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listTimeEntries(ctx, employeeID)
}

func (s *Store) listTimeEntries(ctx context.Context, employeeID string) ([]worktime.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, start_at, end_at, break_minutes
		FROM time_entries WHERE employee_id = ? ORDER BY start_at ASC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	var entries []worktime.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanTimeEntry(row scanner) (worktime.TimeEntry, error) {
	var (
		e          worktime.TimeEntry
		start, end string
	)
	if err := row.Scan(&e.ID, &e.EmployeeID, &start, &end, &e.BreakDurationMinutes); err != nil {
		return e, err
	}
	e.Start, _ = time.Parse(time.RFC3339, start)
	e.End, _ = time.Parse(time.RFC3339, end)
	return e, nil
}

// =============================================================================
// ABSENCE REQUESTS
// =============================================================================

// SaveAbsence inserts or replaces an absence request.
func (s *Store) SaveAbsence(ctx context.Context, r timeoff.AbsenceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO absence_requests (id, employee_id, type, start_date, end_date,
			day_portion, status, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			day_portion = excluded.day_portion,
			status = excluded.status,
			reason = excluded.reason,
			updated_at = excluded.updated_at
	`
	portion := r.DayPortion
	if portion == "" {
		portion = timeoff.PortionFull
	}
	ts := now()
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.EmployeeID, string(r.Type),
		r.StartDate.String(), r.EndDate.String(),
		string(portion), string(r.Status), r.Reason, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to save absence: %w", err)
	}
	return nil
}

// GetAbsence returns one absence request.
func (s *Store) GetAbsence(ctx context.Context, id string) (timeoff.AbsenceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_id, type, start_date, end_date, day_portion, status, reason
		FROM absence_requests WHERE id = ?`, id)
	r, err := scanAbsence(row)
	if errors.Is(err, sql.ErrNoRows) {
		return r, generic.ErrRecordNotFound
	}
	return r, err
}

// UpdateAbsenceStatus moves a pending request to status. Decisions are
// final: a request that is no longer pending yields ErrInvalidTransition.
func (s *Store) UpdateAbsenceStatus(ctx context.Context, id string, status timeoff.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE absence_requests SET status = ?, updated_at = ? WHERE id = ? AND status = ?",
		string(status), now(), id, string(timeoff.StatusPending))
	if err := expectRow(res, err, generic.ErrInvalidTransition); !errors.Is(err, generic.ErrInvalidTransition) {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM absence_requests WHERE id = ?", id).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return generic.ErrRecordNotFound
	}
	return fmt.Errorf("absence %s: %w", id, generic.ErrInvalidTransition)
}

// ListAbsences returns the employee's absence requests ordered by start date.
func (s *Store) ListAbsences(ctx context.Context, employeeID string) ([]timeoff.AbsenceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listAbsences(ctx, employeeID)
}

// ListPendingAbsences returns every pending request, oldest first.
func (s *Store) ListPendingAbsences(ctx context.Context) ([]timeoff.AbsenceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryAbsences(ctx, `
		SELECT id, employee_id, type, start_date, end_date, day_portion, status, reason
		FROM absence_requests WHERE status = ? ORDER BY created_at ASC`, string(timeoff.StatusPending))
}

func (s *Store) listAbsences(ctx context.Context, employeeID string) ([]timeoff.AbsenceRequest, error) {
	return s.queryAbsences(ctx, `
		SELECT id, employee_id, type, start_date, end_date, day_portion, status, reason
		FROM absence_requests WHERE employee_id = ? ORDER BY start_date ASC, created_at ASC`, employeeID)
}

func (s *Store) queryAbsences(ctx context.Context, query string, args ...any) ([]timeoff.AbsenceRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var out []timeoff.AbsenceRequest
	for rows.Next() {
		r, err := scanAbsence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanAbsence(row scanner) (timeoff.AbsenceRequest, error) {
	var (
		r                    timeoff.AbsenceRequest
		kind, portion, state string
		startDate, endDate   string
	)
	if err := row.Scan(&r.ID, &r.EmployeeID, &kind, &startDate, &endDate, &portion, &state, &r.Reason); err != nil {
		return r, err
	}
	r.Type = timeoff.AbsenceType(kind)
	r.StartDate = parseDate(startDate)
	r.EndDate = parseDate(endDate)
	r.DayPortion = timeoff.DayPortion(portion)
	r.Status = timeoff.RequestStatus(state)
	return r, nil
}

// =============================================================================
// ADJUSTMENTS
// =============================================================================

// SaveAdjustment inserts an adjustment.
func (s *Store) SaveAdjustment(ctx context.Context, a worktime.Adjustment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO adjustments (id, employee_id, date, type, hours, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeID, a.Date.String(), string(a.Type), a.Hours.String(), a.Note, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save adjustment: %w", err)
	}
	return nil
}

// ListAdjustments returns the employee's adjustments ordered by date.
func (s *Store) ListAdjustments(ctx context.Context, employeeID string) ([]worktime.Adjustment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listAdjustments(ctx, employeeID)
}

func (s *Store) listAdjustments(ctx context.Context, employeeID string) ([]worktime.Adjustment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, date, type, hours, note
		FROM adjustments WHERE employee_id = ? ORDER BY date ASC, created_at ASC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	defer rows.Close()

	var out []worktime.Adjustment
	for rows.Next() {
		var (
			a                 worktime.Adjustment
			date, kind, hours string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &date, &kind, &hours, &a.Note); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		a.Date = parseDate(date)
		a.Type = worktime.AdjustmentType(kind)
		var dec decimals
		a.Hours = dec.read("hours", hours)
		if dec.err != nil {
			return nil, corrupt(a.EmployeeID, "unreadable adjustment "+a.ID, dec.err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// SaveHolidays upserts holidays atomically. A date holds one holiday; a
// later save renames it.
func (s *Store) SaveHolidays(ctx context.Context, holidays []generic.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO holidays (date, name, region, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			name = excluded.name,
			region = excluded.region
	`
	ts := now()
	for _, h := range holidays {
		if _, err := tx.ExecContext(ctx, query, h.Date.String(), h.Name, h.Region, ts); err != nil {
			return fmt.Errorf("failed to save holiday %s: %w", h.Date, err)
		}
	}
	return tx.Commit()
}

// DeleteHoliday removes the holiday on date.
func (s *Store) DeleteHoliday(ctx context.Context, date generic.TimePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE date = ?", date.String())
	return expectRow(res, err, generic.ErrRecordNotFound)
}

// ListHolidays returns the holidays of year, or all of them for year 0.
func (s *Store) ListHolidays(ctx context.Context, year int) ([]generic.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := ""
	if year > 0 {
		prefix = fmt.Sprintf("%04d-", year)
	}
	return s.listHolidays(ctx, prefix)
}

// HolidayCalendar returns the stored holidays of years as a lookup map.
func (s *Store) HolidayCalendar(ctx context.Context, years ...int) (generic.HolidayMap, error) {
	calendar := generic.HolidayMap{}
	for _, y := range years {
		list, err := s.ListHolidays(ctx, y)
		if err != nil {
			return nil, err
		}
		calendar.Add(list...)
	}
	return calendar, nil
}

func (s *Store) listHolidays(ctx context.Context, datePrefix string) ([]generic.Holiday, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date, name, region FROM holidays WHERE date LIKE ? ORDER BY date ASC", datePrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var out []generic.Holiday
	for rows.Next() {
		var h generic.Holiday
		var date string
		if err := rows.Scan(&date, &h.Name, &h.Region); err != nil {
			return nil, err
		}
		h.Date = parseDate(date)
		out = append(out, h)
	}
	return out, rows.Err()
}
