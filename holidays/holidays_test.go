package holidays_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/worktime-engine/generic"
	"github.com/warp/worktime-engine/holidays"
)

func TestEaster(t *testing.T) {
	cases := map[int]string{
		2019: "2019-04-21",
		2023: "2023-04-09",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
	}
	for year, want := range cases {
		assert.Equal(t, generic.MustParseDate(want), holidays.Easter(year), year)
	}
}

func TestForYear_Nationwide(t *testing.T) {
	list := holidays.ForYear(2024, "")

	require.Len(t, list, 9)
	assert.Equal(t, "Neujahr", list[0].Name)
	assert.Equal(t, generic.MustParseDate("2024-03-29"), list[1].Date, "Karfreitag")
	assert.Equal(t, generic.MustParseDate("2024-05-09"), list[4].Date, "Christi Himmelfahrt")
	assert.Equal(t, "2. Weihnachtstag", list[8].Name)
	for _, h := range list {
		assert.Empty(t, h.Region)
	}
}

func TestForYear_Bavaria(t *testing.T) {
	cal := holidays.Calendar("by", 2024)

	fronleichnam, ok := cal.Lookup(generic.MustParseDate("2024-05-30"))
	require.True(t, ok)
	assert.Equal(t, "Fronleichnam", fronleichnam.Name)
	assert.Equal(t, "BY", fronleichnam.Region)

	assert.True(t, cal.IsHoliday(generic.MustParseDate("2024-01-06")))
	assert.True(t, cal.IsHoliday(generic.MustParseDate("2024-11-01")))
	assert.False(t, cal.IsHoliday(generic.MustParseDate("2024-10-31")))
}

func TestForYear_RegionSpecificRules(t *testing.T) {
	berlin := holidays.Calendar("BE", 2018, 2024)
	assert.False(t, berlin.IsHoliday(generic.MustParseDate("2018-03-08")))
	assert.True(t, berlin.IsHoliday(generic.MustParseDate("2024-03-08")))

	saxony := holidays.Calendar("SN", 2024)
	assert.True(t, saxony.IsHoliday(generic.MustParseDate("2024-11-20")), "Buß- und Bettag")

	hamburg := holidays.Calendar("HH", 2017, 2024)
	assert.True(t, hamburg.IsHoliday(generic.MustParseDate("2017-10-31")))
	assert.True(t, hamburg.IsHoliday(generic.MustParseDate("2024-10-31")))

	unknown := holidays.Calendar("XX", 2024)
	assert.Len(t, unknown.Holidays(2024), 9)
	assert.False(t, holidays.IsKnownRegion("XX"))
	assert.True(t, holidays.IsKnownRegion(" nw "))
}

func TestYearsOf(t *testing.T) {
	p := generic.Period{Start: generic.MustParseDate("2023-12-28"), End: generic.MustParseDate("2025-01-03")}

	assert.Equal(t, []int{2023, 2024, 2025}, holidays.YearsOf(p))
}

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//holidays//DE\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:1@test\r\n" +
	"DTSTART;VALUE=DATE:20241003\r\n" +
	"SUMMARY:Tag der Deutschen Einheit\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:2@test\r\n" +
	"DTSTART:20241231T000000Z\r\n" +
	"SUMMARY:Silvester\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:3@test\r\n" +
	"DTSTART;VALUE=DATE:20241224\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseICS(t *testing.T) {
	list, err := holidays.ParseICS(strings.NewReader(feed), "be")

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, generic.MustParseDate("2024-10-03"), list[0].Date)
	assert.Equal(t, "Tag der Deutschen Einheit", list[0].Name)
	assert.Equal(t, "BE", list[0].Region)
	assert.Equal(t, generic.MustParseDate("2024-12-31"), list[1].Date)
}
