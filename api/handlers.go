/*
handlers.go - HTTP API handlers for the work time balance engine

PURPOSE:
  Exposes the balance engine via REST API. Handles HTTP request/response,
  JSON serialization and validation, loads snapshots from the store and
  delegates every computation to the worktime and timeoff packages.

ENDPOINTS:
  Employees:
    GET    /api/employees                         List employees
    POST   /api/employees                         Create employee with contracts
    GET    /api/employees/{id}                    Employee with contract history
    POST   /api/employees/{id}/contracts          Append a contract record

  Time entries:
    GET    /api/employees/{id}/entries            List entries
    POST   /api/employees/{id}/entries            Record an entry
    PUT    /api/employees/{id}/entries/{entryID}  Replace an entry
    DELETE /api/employees/{id}/entries/{entryID}  Delete an entry

  Absences:
    GET    /api/employees/{id}/absences           List requests
    POST   /api/employees/{id}/absences           Submit a request
    GET    /api/absences/pending                  Requests awaiting a decision
    POST   /api/absences/{id}/approve             pending → approved
    POST   /api/absences/{id}/reject              pending → rejected

  Balance:
    POST   /api/employees/{id}/adjustments        Correction or payout
    GET    /api/employees/{id}/adjustments        List adjustments
    GET    /api/employees/{id}/balance            Balance as of a date
    GET    /api/employees/{id}/statements/...     Monthly statements, xlsx export
    GET    /api/employees/{id}/entitlements/{y}   Vacation and sick-day counts

ERROR HANDLING:
  Errors are returned as JSON {error, details} with status:
  - 400: Validation errors, invalid input
  - 404: Employee or record not found
  - 409: Collision, duplicate contract, request already decided
  - 422: Stored data the engine refuses to compute on
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - holidays.go: Holiday calendar endpoints
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/worktime-engine/factory"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/report"
	"github.com/warp/worktime-engine/store/sqlite"
	"github.com/warp/worktime-engine/timeoff"
	"github.com/warp/worktime-engine/worktime"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Contracts *factory.ContractFactory
	Log       *logrus.Entry

	// Region selects the state holidays loaded by POST /api/holidays/defaults.
	Region string

	// Now is the clock used for default dates.
	Now func() time.Time

	validate *validator.Validate
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, log *logrus.Entry) *Handler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Handler{
		Store:     store,
		Contracts: factory.NewContractFactory(),
		Log:       log,
		Now:       time.Now,
		validate:  validator.New(),
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = h.toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates an employee together with their contract history.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	firstWorkDay, err := generic.ParseDate(req.FirstWorkDay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid first_work_day", err)
		return
	}

	emp := worktime.Employee{
		ID:                       req.ID,
		Name:                     req.Name,
		FirstWorkDay:             firstWorkDay,
		StartingTimeBalanceHours: req.StartingTimeBalanceHours,
		AutomaticBreakDeduction:  req.AutomaticBreakDeduction,
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	if req.Timezone != "" {
		loc, err := time.LoadLocation(req.Timezone)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid timezone", err)
			return
		}
		emp.Location = loc
	}

	for i, cj := range req.Contracts {
		c, err := h.Contracts.FromJSON(cj)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid contract %d", i), err)
			return
		}
		emp.ContractHistory = append(emp.ContractHistory, c)
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		h.writeDomainError(w, r, "Failed to create employee", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"employee_id": emp.ID, "contracts": len(emp.ContractHistory)}).Info("Employee created")
	writeJSON(w, http.StatusCreated, h.toEmployeeDTO(emp))
}

// GetEmployee returns an employee with their contract history.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Store.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee and every record they own.
// DELETE /api/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEmployee(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, "Failed to delete employee", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// AddContract appends a contract record to an employee's history.
// POST /api/employees/{id}/contracts
func (h *Handler) AddContract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var cj factory.ContractJSON
	if !h.decode(w, r, &cj) {
		return
	}
	c, err := h.Contracts.FromJSON(cj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid contract", err)
		return
	}
	if err := h.Store.AddContract(ctx, id, c); err != nil {
		h.writeDomainError(w, r, "Failed to add contract", err)
		return
	}

	emp, err := h.Store.GetEmployee(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toEmployeeDTO(emp))
}

func (h *Handler) toEmployeeDTO(e worktime.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                      e.ID,
		Name:                    e.Name,
		FirstWorkDay:            e.FirstWorkDay.String(),
		StartingTimeBalance:     generic.Hours(e.StartingTimeBalanceHours),
		AutomaticBreakDeduction: e.AutomaticBreakDeduction,
		Contracts:               make([]factory.ContractJSON, 0, len(e.ContractHistory)),
	}
	if e.Location != nil {
		dto.Timezone = e.Location.String()
	}
	for _, c := range e.ContractHistory {
		dto.Contracts = append(dto.Contracts, h.Contracts.ToJSON(c))
	}
	return dto
}

// =============================================================================
// TIME ENTRY HANDLERS
// =============================================================================

// ListEntries returns an employee's time entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.Store.GetEmployee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Failed to get employee", err)
		return
	}
	entries, err := h.Store.ListTimeEntries(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list entries", err)
		return
	}

	dtos := make([]TimeEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toTimeEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEntry records a worked interval. The statutory break is applied
// when the employee has automatic deduction enabled, and the interval must
// not collide with an existing entry or absence.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req TimeEntryRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.saveEntry(w, r, worktime.TimeEntry{
		ID:                   uuid.NewString(),
		EmployeeID:           chi.URLParam(r, "id"),
		Start:                req.Start,
		End:                  req.End,
		BreakDurationMinutes: req.BreakDurationMinutes,
	}, http.StatusCreated)
}

// UpdateEntry replaces an existing entry. The entry itself is ignored by the
// collision check.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}

	var req TimeEntryRequest
	if !h.decode(w, r, &req) {
		return
	}
	existing.Start = req.Start
	existing.End = req.End
	existing.BreakDurationMinutes = req.BreakDurationMinutes
	h.saveEntry(w, r, existing, http.StatusOK)
}

// DeleteEntry removes an entry.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteTimeEntry(r.Context(), existing.ID); err != nil {
		h.writeDomainError(w, r, "Failed to delete entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

func (h *Handler) ownedEntry(w http.ResponseWriter, r *http.Request) (worktime.TimeEntry, bool) {
	entry, err := h.Store.GetTimeEntry(r.Context(), chi.URLParam(r, "entryID"))
	if err == nil && entry.EmployeeID != chi.URLParam(r, "id") {
		err = generic.ErrRecordNotFound
	}
	if err != nil {
		h.writeDomainError(w, r, "Failed to get entry", err)
		return entry, false
	}
	return entry, true
}

func (h *Handler) saveEntry(w http.ResponseWriter, r *http.Request, entry worktime.TimeEntry, status int) {
	ctx := r.Context()

	emp, in, err := h.Store.LoadInputs(ctx, entry.EmployeeID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid time entry", err)
		return
	}
	entry = worktime.ApplyAutomaticBreak(entry, emp)

	if conflict := emp.DetectCollision(entry.Start, entry.End, in, entry.ID); conflict != nil {
		writeJSON(w, http.StatusConflict, toCollisionDTO(conflict))
		return
	}

	if err := h.Store.SaveTimeEntry(ctx, entry); err != nil {
		h.writeDomainError(w, r, "Failed to save entry", err)
		return
	}
	writeJSON(w, status, toTimeEntryDTO(entry))
}

// =============================================================================
// ABSENCE HANDLERS
// =============================================================================

// ListAbsences returns an employee's absence requests, optionally filtered
// by ?status=.
func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.Store.GetEmployee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Failed to get employee", err)
		return
	}
	requests, err := h.Store.ListAbsences(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list absences", err)
		return
	}

	status := r.URL.Query().Get("status")
	dtos := make([]AbsenceDTO, 0, len(requests))
	for _, req := range requests {
		if status != "" && string(req.Status) != status {
			continue
		}
		dtos = append(dtos, toAbsenceDTO(req))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SubmitAbsence creates a pending absence request. Days already holding an
// entry or another open request are refused.
func (h *Handler) SubmitAbsence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body AbsenceRequestBody
	if !h.decode(w, r, &body) {
		return
	}
	start, err := generic.ParseDate(body.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return
	}
	end, err := generic.ParseDate(body.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return
	}

	req := timeoff.AbsenceRequest{
		ID:         uuid.NewString(),
		EmployeeID: chi.URLParam(r, "id"),
		Type:       timeoff.AbsenceType(body.Type),
		StartDate:  start,
		EndDate:    end,
		DayPortion: timeoff.DayPortion(body.DayPortion),
		Status:     timeoff.StatusPending,
		Reason:     body.Reason,
	}
	if req.DayPortion == "" {
		req.DayPortion = timeoff.PortionFull
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid absence request", err)
		return
	}

	emp, in, err := h.Store.LoadInputs(ctx, req.EmployeeID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	if conflict := absenceCollision(emp, req, in); conflict != nil {
		writeJSON(w, http.StatusConflict, toCollisionDTO(conflict))
		return
	}

	if err := h.Store.SaveAbsence(ctx, req); err != nil {
		h.writeDomainError(w, r, "Failed to save absence", err)
		return
	}

	h.Log.WithFields(logrus.Fields{
		"employee_id": req.EmployeeID,
		"absence_id":  req.ID,
		"type":        req.Type,
		"period":      req.Period().String(),
	}).Info("Absence submitted")
	writeJSON(w, http.StatusCreated, toAbsenceDTO(req))
}

// absenceCollision checks every day of the request as a whole day in the
// employee's zone.
func absenceCollision(emp worktime.Employee, req timeoff.AbsenceRequest, in worktime.Inputs) *worktime.Conflict {
	loc := emp.Zone()
	for _, day := range req.Period().Days() {
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if c := worktime.DetectCollision(from, to, in.Entries, in.Absences, ""); c != nil {
			return c
		}
	}
	return nil
}

// ListPendingAbsences returns every request awaiting a decision.
// GET /api/absences/pending
func (h *Handler) ListPendingAbsences(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.ListPendingAbsences(r.Context())
	if err != nil {
		h.writeDomainError(w, r, "Failed to get pending absences", err)
		return
	}
	dtos := make([]AbsenceDTO, len(requests))
	for i, req := range requests {
		dtos[i] = toAbsenceDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveAbsence approves a pending request.
// POST /api/absences/{id}/approve
func (h *Handler) ApproveAbsence(w http.ResponseWriter, r *http.Request) {
	h.decideAbsence(w, r, timeoff.Approve)
}

// RejectAbsence rejects a pending request.
// POST /api/absences/{id}/reject
func (h *Handler) RejectAbsence(w http.ResponseWriter, r *http.Request) {
	h.decideAbsence(w, r, timeoff.Reject)
}

func (h *Handler) decideAbsence(w http.ResponseWriter, r *http.Request, decide func(timeoff.AbsenceRequest) (timeoff.AbsenceRequest, error)) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	req, err := h.Store.GetAbsence(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to get absence", err)
		return
	}
	decided, err := decide(req)
	if err != nil {
		h.writeDomainError(w, r, "Request is not pending", err)
		return
	}
	if err := h.Store.UpdateAbsenceStatus(ctx, id, decided.Status); err != nil {
		h.writeDomainError(w, r, "Failed to update absence", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"absence_id": id, "status": decided.Status}).Info("Absence decided")
	writeJSON(w, http.StatusOK, toAbsenceDTO(decided))
}

// =============================================================================
// ADJUSTMENT HANDLERS
// =============================================================================

// CreateAdjustment records a manual correction or an overtime payout.
// Payout hours always reduce the balance, whatever sign the client sent.
func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req AdjustmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := generic.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	var adj worktime.Adjustment
	if worktime.AdjustmentType(req.Type) == worktime.AdjustmentPayout {
		adj = worktime.NewPayout(id, date, req.Hours, req.Note)
	} else {
		adj = worktime.Adjustment{
			EmployeeID: id,
			Date:       date,
			Type:       worktime.AdjustmentType(req.Type),
			Hours:      req.Hours,
			Note:       req.Note,
		}
	}
	adj.ID = uuid.NewString()
	if err := adj.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid adjustment", err)
		return
	}

	if _, err := h.Store.GetEmployee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Failed to get employee", err)
		return
	}
	if err := h.Store.SaveAdjustment(ctx, adj); err != nil {
		h.writeDomainError(w, r, "Failed to save adjustment", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"employee_id": id, "type": adj.Type, "hours": adj.Hours.String()}).Info("Adjustment recorded")
	writeJSON(w, http.StatusCreated, toAdjustmentDTO(adj))
}

// ListAdjustments returns an employee's adjustments.
func (h *Handler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if _, err := h.Store.GetEmployee(ctx, id); err != nil {
		h.writeDomainError(w, r, "Failed to get employee", err)
		return
	}
	adjustments, err := h.Store.ListAdjustments(ctx, id)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list adjustments", err)
		return
	}
	dtos := make([]AdjustmentDTO, len(adjustments))
	for i, a := range adjustments {
		dtos[i] = toAdjustmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// BALANCE & STATEMENT HANDLERS
// =============================================================================

// GetBalance returns the balance as of ?as_of=YYYY-MM-DD, default today in
// the employee's zone.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	emp, in, err := h.Store.LoadInputs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}

	asOf := emp.DateOf(h.Now())
	if s := r.URL.Query().Get("as_of"); s != "" {
		if asOf, err = generic.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
	}

	balance, err := worktime.Balance(emp, asOf, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute balance", err)
		return
	}
	credits, err := worktime.Credits(emp, asOf, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute credits", err)
		return
	}
	debit, err := worktime.PayrollDebit(emp, asOf)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute target", err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceDTO{
		EmployeeID: emp.ID,
		AsOf:       asOf.String(),
		Balance:    generic.Hours(balance),
		Starting:   generic.Hours(emp.StartingTimeBalanceHours),
		Credited:   toCreditsDTO(credits),
		Target:     generic.Hours(debit),
	})
}

// GetBalanceSeries returns month-end balances between two dates.
// GET /api/employees/{id}/balance/series?from=YYYY-MM-DD&to=YYYY-MM-DD
// Defaults to January 1 of the current year through today.
func (h *Handler) GetBalanceSeries(w http.ResponseWriter, r *http.Request) {
	emp, in, err := h.Store.LoadInputs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}

	to := emp.DateOf(h.Now())
	from := generic.StartOfYear(to.Year())
	q := r.URL.Query()
	if s := q.Get("from"); s != "" {
		if from, err = generic.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
	}
	if s := q.Get("to"); s != "" {
		if to, err = generic.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "Invalid range", generic.ErrInvalidPeriod)
		return
	}

	points, err := worktime.BalanceSeries(emp, from, to, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute balance series", err)
		return
	}
	out := make([]BalancePointDTO, len(points))
	for i, p := range points {
		out[i] = BalancePointDTO{Date: p.Date.String(), Balance: generic.Hours(p.Balance)}
	}
	writeJSON(w, http.StatusOK, map[string]any{"employee_id": emp.ID, "points": out})
}

// GetMonthStatement returns one month's statement.
// GET /api/employees/{id}/statements/{year}/{month}
func (h *Handler) GetMonthStatement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}

	emp, in, err := h.Store.LoadInputs(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	st, err := worktime.MonthlyStatement(emp, year, time.Month(month), in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute statement", err)
		return
	}
	closed, err := h.Store.IsMonthClosed(ctx, emp.ID, year, time.Month(month))
	if err != nil {
		h.writeDomainError(w, r, "Failed to check month", err)
		return
	}

	dto := toStatementDTO(st)
	dto.Closed = closed
	writeJSON(w, http.StatusOK, dto)
}

// GetYearStatements returns January through December.
// GET /api/employees/{id}/statements/{year}
func (h *Handler) GetYearStatements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	emp, in, err := h.Store.LoadInputs(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	statements, err := worktime.YearStatements(emp, year, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute statements", err)
		return
	}
	closed, err := h.Store.ListStatements(ctx, emp.ID, year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list closed months", err)
		return
	}
	closedMonths := make(map[time.Month]bool, len(closed))
	for _, st := range closed {
		closedMonths[st.Month] = true
	}

	dtos := make([]StatementDTO, len(statements))
	for i, st := range statements {
		dtos[i] = toStatementDTO(st)
		dtos[i].Closed = closedMonths[st.Month]
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ExportYear streams the year's statements and entitlement as xlsx.
// GET /api/employees/{id}/statements/{year}/export
func (h *Handler) ExportYear(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	emp, in, err := h.Store.LoadInputs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	statements, err := worktime.YearStatements(emp, year, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute statements", err)
		return
	}
	account, err := worktime.VacationAccountFor(emp, year, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute vacation account", err)
		return
	}

	buf, err := report.BuildYearWorkbook(emp, statements, report.Entitlement{
		Account:  account,
		SickDays: timeoff.AnnualSickDaysTaken(emp.ID, in.Absences, year, in.Holidays),
		Months:   timeoff.MonthlyAbsenceBreakdown(emp.ID, in.Absences, year, in.Holidays),
	})
	if err != nil {
		h.writeDomainError(w, r, "Failed to build workbook", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%d.xlsx"`, emp.ID, year))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.Log.WithError(err).WithField("employee_id", emp.ID).Warn("Failed to send workbook")
	}
}

// GetEntitlements returns vacation and sick-day counts for a year.
// GET /api/employees/{id}/entitlements/{year}
func (h *Handler) GetEntitlements(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(w, r)
	if !ok {
		return
	}
	emp, in, err := h.Store.LoadInputs(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	account, err := worktime.VacationAccountFor(emp, year, in)
	if err != nil {
		h.writeDomainError(w, r, "Failed to compute vacation account", err)
		return
	}

	writeJSON(w, http.StatusOK, EntitlementDTO{
		EmployeeID:    emp.ID,
		Year:          year,
		VacationTaken: generic.Days(timeoff.AnnualVacationTaken(emp.ID, in.Absences, year, in.Holidays)),
		SickDays:      generic.Days(timeoff.AnnualSickDaysTaken(emp.ID, in.Absences, year, in.Holidays)),
		Vacation: VacationAccountDTO{
			Entitlement: generic.Days(account.Entitlement),
			CarriedOver: generic.Days(account.CarriedOver),
			Taken:       generic.Days(account.Taken),
			Remaining:   generic.Days(account.Remaining),
		},
		Months: timeoff.MonthlyAbsenceBreakdown(emp.ID, in.Absences, year, in.Holidays),
	})
}

// =============================================================================
// COLLISION CHECK
// =============================================================================

// CheckCollision reports whether an interval is free without saving
// anything. Clients call it while the user is still typing.
// POST /api/collisions/check
func (h *Handler) CheckCollision(w http.ResponseWriter, r *http.Request) {
	var req CollisionCheckRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !req.End.After(req.Start) {
		writeError(w, http.StatusBadRequest, "Invalid interval", generic.ErrInvalidPeriod)
		return
	}

	emp, in, err := h.Store.LoadInputs(r.Context(), req.EmployeeID)
	if err != nil {
		h.writeDomainError(w, r, "Failed to load employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toCollisionDTO(emp.DetectCollision(req.Start, req.End, in, req.IgnoreID)))
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads a JSON body into dst and validates it. It writes the 400
// response itself and reports whether the caller may continue.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return true
		}
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 2200 {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, false
	}
	return year, true
}

// statusFor maps engine and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case generic.IsDataIntegrity(err), errors.Is(err, generic.ErrEmptyContractHistory):
		return http.StatusUnprocessableEntity
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, generic.ErrDuplicateContract), errors.Is(err, generic.ErrInvalidTransition):
		return http.StatusConflict
	case generic.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	entry := h.Log.WithError(err).WithField("path", r.URL.Path)
	switch {
	case status >= http.StatusInternalServerError:
		entry.Error(message)
	case status == http.StatusUnprocessableEntity:
		entry.Warn(message)
	}
	writeError(w, status, message, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
