/*
scheduler.go - Automated month-close scheduler

PURPOSE:
  Once a month is over, its statement becomes what payroll works from.
  The scheduler periodically computes the previous month's statement for
  every employee and stores it in monthly_statements.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Closes the month before the current one (in UTC)
  - A month is stored once per employee; later runs skip it
  - Employees whose contract data the engine refuses are logged and skipped,
    they never block the others

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewMonthCloseScheduler(store, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: CloseMonth endpoint (manual close)
  - worktime/statement.go: MonthlyStatement
*/
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/store/sqlite"
	"github.com/warp/worktime-engine/worktime"
)

// CloseResult summarizes one month-close run.
type CloseResult struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Closed  int        `json:"closed"`
	Skipped int        `json:"skipped"` // already closed or not yet employed
	Failed  int        `json:"failed"`
}

// CloseMonth stores the statement of year/month for every employee that
// does not have one yet.
func CloseMonth(ctx context.Context, store *sqlite.Store, log *logrus.Entry, year int, month time.Month) (CloseResult, error) {
	result := CloseResult{Year: year, Month: month}

	employees, err := store.ListEmployees(ctx)
	if err != nil {
		return result, err
	}

	monthEnd := generic.EndOfMonth(year, month)
	for _, emp := range employees {
		fields := logrus.Fields{"employee_id": emp.ID, "year": year, "month": int(month)}

		if monthEnd.Before(emp.FirstWorkDay) {
			result.Skipped++
			continue
		}
		closed, err := store.IsMonthClosed(ctx, emp.ID, year, month)
		if err != nil {
			return result, err
		}
		if closed {
			result.Skipped++
			continue
		}

		snapshot, in, err := store.LoadInputs(ctx, emp.ID)
		if err != nil {
			log.WithError(err).WithFields(fields).Error("Failed to load employee")
			result.Failed++
			continue
		}
		st, err := worktime.MonthlyStatement(snapshot, year, month, in)
		if err != nil {
			log.WithError(err).WithFields(fields).Warn("Cannot close month")
			result.Failed++
			continue
		}
		inserted, err := store.SaveStatement(ctx, st)
		if err != nil {
			log.WithError(err).WithFields(fields).Error("Failed to save statement")
			result.Failed++
			continue
		}
		if inserted {
			result.Closed++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

// previousMonth returns the month before now's, in UTC.
func previousMonth(now time.Time) (int, time.Month) {
	t := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// MonthCloseScheduler closes the previous month periodically.
type MonthCloseScheduler struct {
	Store         *sqlite.Store
	Log           *logrus.Entry
	CheckInterval time.Duration
	Enabled       bool
	Now           func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewMonthCloseScheduler creates a new scheduler.
func NewMonthCloseScheduler(store *sqlite.Store, log *logrus.Entry) *MonthCloseScheduler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &MonthCloseScheduler{
		Store:         store,
		Log:           log.WithField("component", "month-close"),
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		Now:           time.Now,
	}
}

// Start begins the scheduler.
func (s *MonthCloseScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.Log.Info("Disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run()

	s.Log.WithField("interval", s.CheckInterval.String()).Info("Started")
}

// Stop stops the scheduler and waits for a running check to finish.
func (s *MonthCloseScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		s.Log.Info("Stopped")
	}
}

func (s *MonthCloseScheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.RunOnce(context.Background())

	for {
		select {
		case <-s.ticker.C:
			s.RunOnce(context.Background())
		case <-s.stop:
			return
		}
	}
}

// RunOnce closes the previous month.
func (s *MonthCloseScheduler) RunOnce(ctx context.Context) CloseResult {
	year, month := previousMonth(s.Now())

	result, err := CloseMonth(ctx, s.Store, s.Log, year, month)
	if err != nil {
		s.Log.WithError(err).Error("Month close failed")
		return result
	}
	if result.Closed > 0 || result.Failed > 0 {
		s.Log.WithFields(logrus.Fields{
			"year":    year,
			"month":   int(month),
			"closed":  result.Closed,
			"skipped": result.Skipped,
			"failed":  result.Failed,
		}).Info("Month close completed")
	}
	return result
}

// CloseMonthRequest selects the month to close; zero values mean the
// previous month.
type CloseMonthRequest struct {
	Year  int `json:"year" validate:"omitempty,gte=1900,lte=2200"`
	Month int `json:"month" validate:"omitempty,gte=1,lte=12"`
}

// CloseMonth closes a month on demand.
// POST /api/admin/close-month
func (h *Handler) CloseMonth(w http.ResponseWriter, r *http.Request) {
	var req CloseMonthRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	year, month := previousMonth(h.Now())
	if req.Year != 0 && req.Month != 0 {
		year, month = req.Year, time.Month(req.Month)
	}

	result, err := CloseMonth(r.Context(), h.Store, h.Log, year, month)
	if err != nil {
		h.writeDomainError(w, r, "Failed to close month", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
