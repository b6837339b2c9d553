package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// MONTHLY STATEMENTS (closed months)
// =============================================================================

// SaveStatement stores a closed month. A month is closed once: saving it
// again is a no-op and reports false.
func (s *Store) SaveStatement(ctx context.Context, st worktime.Statement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO monthly_statements (employee_id, year, month, previous_balance, worked_hours,
			adjustments, vacation_credit_hours, sick_leave_credit_hours, holiday_credit_hours,
			total_credited, target_hours, monthly_balance, end_of_month_balance, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(employee_id, year, month) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query,
		st.EmployeeID, st.Year, int(st.Month),
		st.PreviousBalance.String(),
		st.WorkedHours.String(),
		st.Adjustments.String(),
		st.VacationCreditHours.String(),
		st.SickLeaveCreditHours.String(),
		st.HolidayCreditHours.String(),
		st.TotalCredited.String(),
		st.TargetHours.String(),
		st.MonthlyBalance.String(),
		st.EndOfMonthBalance.String(),
		now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save statement: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// IsMonthClosed reports whether a statement was stored for the month.
func (s *Store) IsMonthClosed(ctx context.Context, employeeID string, year int, month time.Month) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM monthly_statements WHERE employee_id = ? AND year = ? AND month = ?",
		employeeID, year, int(month),
	).Scan(&count)
	return count > 0, err
}

// ListStatements returns the closed months of year, January first.
func (s *Store) ListStatements(ctx context.Context, employeeID string, year int) ([]worktime.Statement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, year, month, previous_balance, worked_hours, adjustments,
		       vacation_credit_hours, sick_leave_credit_hours, holiday_credit_hours,
		       total_credited, target_hours, monthly_balance, end_of_month_balance
		FROM monthly_statements
		WHERE employee_id = ? AND year = ?
		ORDER BY month ASC`, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var out []worktime.Statement
	for rows.Next() {
		var (
			st    worktime.Statement
			month int
			cols  [10]string
		)
		if err := rows.Scan(&st.EmployeeID, &st.Year, &month,
			&cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
			&cols[5], &cols[6], &cols[7], &cols[8], &cols[9],
		); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		st.Month = time.Month(month)
		var dec decimals
		st.PreviousBalance = dec.read("previous_balance", cols[0])
		st.WorkedHours = dec.read("worked_hours", cols[1])
		st.Adjustments = dec.read("adjustments", cols[2])
		st.VacationCreditHours = dec.read("vacation_credit_hours", cols[3])
		st.SickLeaveCreditHours = dec.read("sick_leave_credit_hours", cols[4])
		st.HolidayCreditHours = dec.read("holiday_credit_hours", cols[5])
		st.TotalCredited = dec.read("total_credited", cols[6])
		st.TargetHours = dec.read("target_hours", cols[7])
		st.MonthlyBalance = dec.read("monthly_balance", cols[8])
		st.EndOfMonthBalance = dec.read("end_of_month_balance", cols[9])
		if dec.err != nil {
			return nil, corrupt(st.EmployeeID, fmt.Sprintf("unreadable statement %d-%02d", st.Year, month), dec.err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
