/*
Package sqlite provides the SQLite-backed snapshot store for the work time
engine.

PURPOSE:
  The engine is pure: it takes an employee and the collections it needs
  and returns figures. This package persists those collections and
  assembles the snapshot (LoadInputs) each computation runs against.

KEY TABLES:
  employees:          Identity, first work day, starting balance, flags
  contracts:          Effective-dated contract records (UNIQUE per valid_from)
  time_entries:       Worked intervals with breaks
  absence_requests:   Vacation / sick leave / time off with status
  adjustments:        Corrections and payouts (signed hours)
  holidays:           The public holiday calendar
  monthly_statements: Closed months written by the scheduler

DECIMALS:
  Hours and days are stored as TEXT and parsed with shopspring/decimal so
  that a balance read back is bit-identical to the one computed.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

USAGE:
  store, err := sqlite.New("./data/worktime.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  emp, in, err := store.LoadInputs(ctx, "emp-1")
  balance, err := worktime.Balance(emp, emp.DateOf(time.Now()), in)

SEE ALSO:
  - records.go: Entries, absences, adjustments, holidays
  - statements.go: Closed monthly statements
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/worktime"
)

// Store persists employees and their records.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a fresh database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		first_work_day TEXT NOT NULL,
		starting_balance_hours TEXT NOT NULL DEFAULT '0',
		automatic_break_deduction BOOLEAN NOT NULL DEFAULT FALSE,
		timezone TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Contract history. seq keeps insertion order for resolution tie-breaks.
	CREATE TABLE IF NOT EXISTS contracts (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		valid_from TEXT NOT NULL,
		employment_type TEXT NOT NULL DEFAULT '',
		target_hours_model TEXT NOT NULL,
		monthly_target_hours TEXT NOT NULL,
		daily_target_hours TEXT NOT NULL,
		weekly_schedule TEXT,
		vacation_days TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_employee_valid_from
		ON contracts(employee_id, valid_from);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_time_entries_employee_start
		ON time_entries(employee_id, start_at);

	CREATE TABLE IF NOT EXISTS absence_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		day_portion TEXT NOT NULL DEFAULT 'full',
		status TEXT NOT NULL DEFAULT 'pending',
		reason TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_absences_employee
		ON absence_requests(employee_id, start_date);
	CREATE INDEX IF NOT EXISTS idx_absences_status
		ON absence_requests(status);

	CREATE TABLE IF NOT EXISTS adjustments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		hours TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_adjustments_employee
		ON adjustments(employee_id, date);

	CREATE TABLE IF NOT EXISTS holidays (
		date TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		region TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS monthly_statements (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		previous_balance TEXT NOT NULL,
		worked_hours TEXT NOT NULL,
		adjustments TEXT NOT NULL,
		vacation_credit_hours TEXT NOT NULL,
		sick_leave_credit_hours TEXT NOT NULL,
		holiday_credit_hours TEXT NOT NULL,
		total_credited TEXT NOT NULL,
		target_hours TEXT NOT NULL,
		monthly_balance TEXT NOT NULL,
		end_of_month_balance TEXT NOT NULL,
		closed_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, year, month)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// SaveEmployee upserts the employee and replaces its contract history.
// The history must pass worktime.ValidateHistory.
func (s *Store) SaveEmployee(ctx context.Context, emp worktime.Employee) error {
	if err := worktime.ValidateHistory(emp.ContractHistory); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO employees (id, name, first_work_day, starting_balance_hours,
			automatic_break_deduction, timezone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			first_work_day = excluded.first_work_day,
			starting_balance_hours = excluded.starting_balance_hours,
			automatic_break_deduction = excluded.automatic_break_deduction,
			timezone = excluded.timezone
	`
	if _, err := tx.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.FirstWorkDay.String(),
		emp.StartingTimeBalanceHours.String(),
		emp.AutomaticBreakDeduction,
		locationName(emp.Location),
		now(),
	); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM contracts WHERE employee_id = ?", emp.ID); err != nil {
		return fmt.Errorf("failed to replace contracts: %w", err)
	}
	for _, c := range emp.ContractHistory {
		if err := insertContract(ctx, tx, emp.ID, c); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddContract appends a record to the employee's contract history.
func (s *Store) AddContract(ctx context.Context, employeeID string, c worktime.ContractDetails) error {
	if err := worktime.ValidateContract(c); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, err := s.employeeExists(ctx, employeeID); err != nil {
		return err
	} else if !ok {
		return generic.ErrEmployeeNotFound
	}
	return insertContract(ctx, s.db, employeeID, c)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertContract(ctx context.Context, db execer, employeeID string, c worktime.ContractDetails) error {
	query := `
		INSERT INTO contracts (employee_id, valid_from, employment_type, target_hours_model,
			monthly_target_hours, daily_target_hours, weekly_schedule, vacation_days, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.ExecContext(ctx, query,
		employeeID,
		c.ValidFrom.String(),
		c.EmploymentType,
		string(c.TargetHoursModel),
		c.MonthlyTargetHours.String(),
		c.DailyTargetHours.String(),
		encodeSchedule(c.WeeklySchedule),
		c.VacationDays.String(),
		now(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%s: %w", c.ValidFrom, generic.ErrDuplicateContract)
		}
		return fmt.Errorf("failed to save contract: %w", err)
	}
	return nil
}

// GetEmployee returns the employee with its contract history.
func (s *Store) GetEmployee(ctx context.Context, id string) (worktime.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getEmployee(ctx, id)
}

func (s *Store) getEmployee(ctx context.Context, id string) (worktime.Employee, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, first_work_day, starting_balance_hours, automatic_break_deduction, timezone
		FROM employees WHERE id = ?`, id)

	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return worktime.Employee{}, generic.ErrEmployeeNotFound
	}
	if err != nil {
		return worktime.Employee{}, err
	}

	emp.ContractHistory, err = s.loadContracts(ctx, id)
	if err != nil {
		return worktime.Employee{}, err
	}
	return emp, nil
}

// ListEmployees returns all employees with their contract histories.
func (s *Store) ListEmployees(ctx context.Context) ([]worktime.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, first_work_day, starting_balance_hours, automatic_break_deduction, timezone
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}

	var employees []worktime.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		employees = append(employees, emp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		employees[i].ContractHistory, err = s.loadContracts(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return employees, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (worktime.Employee, error) {
	var (
		emp                    worktime.Employee
		firstWorkDay, starting string
		timezone               string
	)
	if err := row.Scan(&emp.ID, &emp.Name, &firstWorkDay, &starting, &emp.AutomaticBreakDeduction, &timezone); err != nil {
		return emp, err
	}
	emp.FirstWorkDay = parseDate(firstWorkDay)
	var dec decimals
	emp.StartingTimeBalanceHours = dec.read("starting_balance_hours", starting)
	if dec.err != nil {
		return emp, corrupt(emp.ID, "unreadable starting balance", dec.err)
	}
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return emp, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		emp.Location = loc
	}
	return emp, nil
}

func (s *Store) loadContracts(ctx context.Context, employeeID string) ([]worktime.ContractDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT valid_from, employment_type, target_hours_model, monthly_target_hours,
		       daily_target_hours, weekly_schedule, vacation_days
		FROM contracts WHERE employee_id = ? ORDER BY seq ASC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var (
		history []worktime.ContractDetails
		dec     decimals
	)
	for rows.Next() {
		var (
			c                        worktime.ContractDetails
			validFrom, model         string
			monthly, daily, vacation string
			schedule                 sql.NullString
		)
		if err := rows.Scan(&validFrom, &c.EmploymentType, &model, &monthly, &daily, &schedule, &vacation); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		c.ValidFrom = parseDate(validFrom)
		c.TargetHoursModel = worktime.TargetHoursModel(model)
		c.MonthlyTargetHours = dec.read("monthly_target_hours", monthly)
		c.DailyTargetHours = dec.read("daily_target_hours", daily)
		c.VacationDays = dec.read("vacation_days", vacation)
		c.WeeklySchedule = decodeSchedule(&dec, schedule)
		if dec.err != nil {
			return nil, corrupt(employeeID, "unreadable contract valid from "+validFrom, dec.err)
		}
		history = append(history, c)
	}
	return history, rows.Err()
}

// DeleteEmployee removes an employee and, by cascade, all its records.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return expectRow(res, err, generic.ErrEmployeeNotFound)
}

func (s *Store) employeeExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees WHERE id = ?", id).Scan(&count)
	return count > 0, err
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// LoadInputs assembles everything the engine needs for one employee.
func (s *Store) LoadInputs(ctx context.Context, employeeID string) (worktime.Employee, worktime.Inputs, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return worktime.Employee{}, worktime.Inputs{}, err
	}

	var in worktime.Inputs
	if in.Entries, err = s.listTimeEntries(ctx, employeeID); err != nil {
		return emp, in, err
	}
	if in.Absences, err = s.listAbsences(ctx, employeeID); err != nil {
		return emp, in, err
	}
	if in.Adjustments, err = s.listAdjustments(ctx, employeeID); err != nil {
		return emp, in, err
	}
	holidays, err := s.listHolidays(ctx, "")
	if err != nil {
		return emp, in, err
	}
	calendar := generic.HolidayMap{}
	calendar.Add(holidays...)
	in.Holidays = calendar

	return emp, in, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseDate(s string) generic.TimePoint {
	tp, _ := generic.ParseDate(s)
	return tp
}

func locationName(loc *time.Location) string {
	if loc == nil {
		return ""
	}
	return loc.String()
}

// encodeSchedule stores the weekly schedule as seven comma-separated
// decimals, Sunday first.
func encodeSchedule(ws *worktime.WeeklySchedule) sql.NullString {
	if ws == nil {
		return sql.NullString{}
	}
	parts := make([]string, len(ws))
	for i, h := range ws {
		parts[i] = h.String()
	}
	return sql.NullString{String: strings.Join(parts, ","), Valid: true}
}

func decodeSchedule(dec *decimals, ns sql.NullString) *worktime.WeeklySchedule {
	if !ns.Valid {
		return nil
	}
	var ws worktime.WeeklySchedule
	for i := range ws {
		ws[i] = decimal.Zero
	}
	for i, part := range strings.Split(ns.String, ",") {
		if i >= len(ws) {
			break
		}
		ws[i] = dec.read("weekly_schedule", part)
	}
	return &ws
}

// decimals reads TEXT decimal columns and keeps the first failure.
type decimals struct {
	err error
}

func (d *decimals) read(column, s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%s %q: %w", column, s, err)
	}
	return v
}

// corrupt reports stored rows the engine cannot use.
func corrupt(employeeID, reason string, err error) error {
	return &generic.DataIntegrityError{EmployeeID: employeeID, Reason: reason, Err: err}
}

func expectRow(res sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
