package generic_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/generic"
)

func TestDateIn_UsesLocation(t *testing.T) {
	ts := time.Date(2024, time.January, 31, 23, 30, 0, 0, time.UTC)
	east := time.FixedZone("UTC+2", 2*3600)

	assert.Equal(t, generic.MustParseDate("2024-01-31"), generic.DateIn(ts, nil))
	assert.Equal(t, generic.MustParseDate("2024-02-01"), generic.DateIn(ts, east))
}

func TestTimePoint_JSON(t *testing.T) {
	var out struct {
		Date generic.TimePoint `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-02-29"}`), &out))
	assert.Equal(t, generic.NewTimePoint(2024, time.February, 29), out.Date)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29"}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"29.02.2024"}`), &out))
}

func TestEndOfMonth_LeapYear(t *testing.T) {
	assert.Equal(t, generic.MustParseDate("2024-02-29"), generic.EndOfMonth(2024, time.February))
	assert.Equal(t, generic.MustParseDate("2023-02-28"), generic.EndOfMonth(2023, time.February))
}

func TestPeriod_MonthStarts(t *testing.T) {
	p := generic.Period{Start: generic.MustParseDate("2023-11-20"), End: generic.MustParseDate("2024-02-01")}

	starts := p.MonthStarts()

	require.Len(t, starts, 4)
	assert.Equal(t, generic.MustParseDate("2023-11-01"), starts[0])
	assert.Equal(t, generic.MustParseDate("2024-02-01"), starts[3])

	assert.Empty(t, generic.Period{Start: p.End, End: p.Start}.MonthStarts())
}

func TestPeriod_OverlapsAndIntersect(t *testing.T) {
	jan := generic.MonthPeriod(2024, time.January)
	feb := generic.MonthPeriod(2024, time.February)
	span := generic.Period{Start: generic.MustParseDate("2024-01-30"), End: generic.MustParseDate("2024-02-02")}

	assert.False(t, jan.Overlaps(feb))
	assert.True(t, jan.Overlaps(span))

	got, ok := feb.Intersect(span)
	require.True(t, ok)
	assert.Equal(t, generic.MustParseDate("2024-02-01"), got.Start)
	assert.Equal(t, generic.MustParseDate("2024-02-02"), got.End)

	_, ok = jan.Intersect(feb)
	assert.False(t, ok)
}

func TestFloorToHalf(t *testing.T) {
	cases := map[string]string{
		"24.5":  "24.5",
		"24.75": "24.5",
		"24.49": "24",
		"-0.25": "-0.5",
		"0":     "0",
	}
	for in, want := range cases {
		got := generic.FloorToHalf(decimal.RequireFromString(in))
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%s -> %s", in, got)
	}
	assert.True(t, generic.IsHalfStep(decimal.RequireFromString("27.5")))
	assert.False(t, generic.IsHalfStep(decimal.RequireFromString("27.25")))
}

func TestHolidayMap(t *testing.T) {
	m := generic.HolidayMap{}
	m.Add(
		generic.Holiday{Date: generic.MustParseDate("2024-12-26"), Name: "2. Weihnachtstag"},
		generic.Holiday{Date: generic.MustParseDate("2024-12-25"), Name: "1. Weihnachtstag"},
		generic.Holiday{Date: generic.MustParseDate("2024-12-25"), Name: "duplicate"},
	)

	assert.True(t, m.IsHoliday(generic.MustParseDate("2024-12-25")))
	assert.False(t, m.IsHoliday(generic.MustParseDate("2023-12-25")))

	list := m.Holidays(2024)
	require.Len(t, list, 2)
	assert.Equal(t, "1. Weihnachtstag", list[0].Name)

	h, ok := m.Lookup(generic.MustParseDate("2024-12-26"))
	require.True(t, ok)
	assert.Equal(t, "2. Weihnachtstag", h.Name)

	assert.False(t, generic.MustParseDate("2024-12-25").IsWorkdayWithHolidays(m))
	assert.True(t, generic.MustParseDate("2024-12-27").IsWorkdayWithHolidays(m))
}
