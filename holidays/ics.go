package holidays

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/warp/worktime-engine/generic"
)

// icsMaxSize caps imported calendars; public holiday feeds are a few KB.
const icsMaxSize = 2 * 1024 * 1024

// ParseICS reads the VEVENTs of an iCalendar feed as holidays. SUMMARY is
// the name and DTSTART's calendar date the holiday date. Events without a
// summary or a readable start are skipped.
func ParseICS(r io.Reader, region string) ([]generic.Holiday, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(r, icsMaxSize))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	var out []generic.Holiday
	for _, evt := range cal.Events() {
		summary := evt.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || strings.TrimSpace(summary.Value) == "" {
			continue
		}
		start := evt.GetProperty(ics.ComponentPropertyDtStart)
		if start == nil {
			continue
		}
		date, err := parseICSDate(start.Value)
		if err != nil {
			continue
		}
		out = append(out, generic.Holiday{
			Date:   date,
			Name:   strings.TrimSpace(summary.Value),
			Region: normalize(region),
		})
	}
	return out, nil
}

// parseICSDate keeps only the date part of DATE and DATE-TIME values.
func parseICSDate(value string) (generic.TimePoint, error) {
	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, value); err == nil {
			return generic.DateOf(t), nil
		}
	}
	return generic.TimePoint{}, fmt.Errorf("unreadable ics date %q", value)
}
