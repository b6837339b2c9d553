package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/holidays"
)

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns the stored holidays, optionally for ?year=.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := 0
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}

	list, err := h.Store.ListHolidays(r.Context(), year)
	if err != nil {
		h.writeDomainError(w, r, "Failed to get holidays", err)
		return
	}
	if list == nil {
		list = []generic.Holiday{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"holidays": list})
}

// CreateHoliday adds or renames the holiday on a date.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req HolidayRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := generic.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	holiday := generic.Holiday{Date: date, Name: req.Name, Region: strings.ToUpper(req.Region)}
	if err := h.Store.SaveHolidays(r.Context(), []generic.Holiday{holiday}); err != nil {
		h.writeDomainError(w, r, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, holiday)
}

// DeleteHoliday removes the holiday on {date}.
// DELETE /api/holidays/{date}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if err := h.Store.DeleteHoliday(r.Context(), date); err != nil {
		h.writeDomainError(w, r, "Failed to delete holiday", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
}

// AddDefaultHolidays stores the statutory holidays of a year for the
// requested region, or the configured one.
// POST /api/holidays/defaults
func (h *Handler) AddDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	var req DefaultHolidaysRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}
	if req.Year == 0 {
		req.Year = h.Now().Year()
	}
	region := req.Region
	if region == "" {
		region = h.Region
	}
	if region != "" && !holidays.IsKnownRegion(region) {
		writeError(w, http.StatusBadRequest, "Unknown region", nil)
		return
	}

	list := holidays.ForYear(req.Year, region)
	if err := h.Store.SaveHolidays(r.Context(), list); err != nil {
		h.writeDomainError(w, r, "Failed to save holidays", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"year": req.Year, "region": region, "count": len(list)}).Info("Default holidays loaded")
	writeJSON(w, http.StatusCreated, map[string]any{
		"status":   "created",
		"count":    len(list),
		"holidays": list,
	})
}

// ImportHolidays stores the all-day events of an iCalendar body.
// POST /api/holidays/import?region=BY
func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	region := strings.ToUpper(r.URL.Query().Get("region"))
	list, err := holidays.ParseICS(r.Body, region)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid calendar", err)
		return
	}
	if err := h.Store.SaveHolidays(r.Context(), list); err != nil {
		h.writeDomainError(w, r, "Failed to save holidays", err)
		return
	}

	h.Log.WithFields(logrus.Fields{"region": region, "count": len(list)}).Info("Holidays imported")
	writeJSON(w, http.StatusCreated, map[string]any{"status": "imported", "count": len(list)})
}
