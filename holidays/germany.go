/*
germany.go - Statutory public holidays in Germany

PURPOSE:

	Generates the holiday calendar the balance engine consumes. Holidays
	credit the day's scheduled hours and are never counted as vacation or
	sick days, so the region matters: Fronleichnam is a paid day off in
	Bavaria and a normal workday in Berlin.

RULES:

	Nationwide:  fixed dates + Easter-relative days (Karfreitag, Ostermontag,
	             Christi Himmelfahrt, Pfingstmontag)
	Per state:   keyed by the two-letter Bundesland code (BY, NW, ...)
	Unknown or empty region: nationwide holidays only

SEE ALSO:
  - ics.go: importing a calendar instead of generating one
  - generic/holiday.go: HolidayMap
*/
package holidays

import (
	"sort"
	"strings"
	"time"

	"github.com/warp/worktime-engine/generic"
)

// Regions lists the supported Bundesland codes.
var Regions = []string{"BW", "BY", "BE", "BB", "HB", "HH", "HE", "MV", "NI", "NW", "RP", "SL", "SN", "ST", "SH", "TH"}

// IsKnownRegion reports whether region is a supported Bundesland code.
func IsKnownRegion(region string) bool {
	region = normalize(region)
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// Easter returns Easter Sunday of year (Gregorian calendar).
func Easter(year int) generic.TimePoint {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return generic.NewTimePoint(year, time.Month(month), day)
}

// rule is one holiday definition. since is the first year it applies.
type rule struct {
	name    string
	date    func(year int) generic.TimePoint
	regions []string // nil = nationwide
	since   int
}

func fixed(month time.Month, day int) func(int) generic.TimePoint {
	return func(year int) generic.TimePoint { return generic.NewTimePoint(year, month, day) }
}

func easterOffset(days int) func(int) generic.TimePoint {
	return func(year int) generic.TimePoint { return Easter(year).AddDays(days) }
}

// bussUndBettag is the Wednesday before November 23.
func bussUndBettag(year int) generic.TimePoint {
	d := generic.NewTimePoint(year, time.November, 22)
	for d.Weekday() != time.Wednesday {
		d = d.AddDays(-1)
	}
	return d
}

var rules = []rule{
	{name: "Neujahr", date: fixed(time.January, 1)},
	{name: "Heilige Drei Könige", date: fixed(time.January, 6), regions: []string{"BW", "BY", "ST"}},
	{name: "Internationaler Frauentag", date: fixed(time.March, 8), regions: []string{"BE"}, since: 2019},
	{name: "Internationaler Frauentag", date: fixed(time.March, 8), regions: []string{"MV"}, since: 2023},
	{name: "Karfreitag", date: easterOffset(-2)},
	{name: "Ostersonntag", date: easterOffset(0), regions: []string{"BB"}},
	{name: "Ostermontag", date: easterOffset(1)},
	{name: "Tag der Arbeit", date: fixed(time.May, 1)},
	{name: "Christi Himmelfahrt", date: easterOffset(39)},
	{name: "Pfingstsonntag", date: easterOffset(49), regions: []string{"BB"}},
	{name: "Pfingstmontag", date: easterOffset(50)},
	{name: "Fronleichnam", date: easterOffset(60), regions: []string{"BW", "BY", "HE", "NW", "RP", "SL"}},
	{name: "Mariä Himmelfahrt", date: fixed(time.August, 15), regions: []string{"SL"}},
	{name: "Weltkindertag", date: fixed(time.September, 20), regions: []string{"TH"}, since: 2019},
	{name: "Tag der Deutschen Einheit", date: fixed(time.October, 3)},
	{name: "Reformationstag", date: fixed(time.October, 31), regions: []string{"BB", "MV", "SN", "ST", "TH"}},
	{name: "Reformationstag", date: fixed(time.October, 31), regions: []string{"HB", "HH", "NI", "SH"}, since: 2018},
	{name: "Allerheiligen", date: fixed(time.November, 1), regions: []string{"BW", "BY", "NW", "RP", "SL"}},
	{name: "Buß- und Bettag", date: bussUndBettag, regions: []string{"SN"}},
	{name: "1. Weihnachtstag", date: fixed(time.December, 25)},
	{name: "2. Weihnachtstag", date: fixed(time.December, 26)},
}

func (r rule) appliesTo(year int, region string) bool {
	if year < r.since {
		return false
	}
	if r.regions == nil {
		return true
	}
	for _, code := range r.regions {
		if code == region {
			return true
		}
	}
	return false
}

// ForYear returns the holidays of year for region, ordered by date.
func ForYear(year int, region string) []generic.Holiday {
	region = normalize(region)
	var out []generic.Holiday
	for _, r := range rules {
		if !r.appliesTo(year, region) {
			continue
		}
		h := generic.Holiday{Date: r.date(year), Name: r.name}
		if r.regions != nil {
			h.Region = region
		}
		out = append(out, h)
	}
	// Reformation's 500th anniversary was a one-off nationwide holiday.
	if year == 2017 && !containsName(out, "Reformationstag") {
		out = append(out, generic.Holiday{Date: generic.NewTimePoint(2017, time.October, 31), Name: "Reformationstag"})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Calendar builds the holiday snapshot for region over years.
func Calendar(region string, years ...int) generic.HolidayMap {
	m := generic.HolidayMap{}
	for _, y := range years {
		m.Add(ForYear(y, region)...)
	}
	return m
}

// YearsOf returns every calendar year touched by p.
func YearsOf(p generic.Period) []int {
	var years []int
	for y := p.Start.Year(); y <= p.End.Year(); y++ {
		years = append(years, y)
	}
	return years
}

func containsName(list []generic.Holiday, name string) bool {
	for _, h := range list {
		if h.Name == name {
			return true
		}
	}
	return false
}

func normalize(region string) string {
	return strings.ToUpper(strings.TrimSpace(region))
}
