package trips

import (
	"fmt"
	"strings"
	"time"

	"hermannm.dev/devlog/log"
	"hermannm.dev/enumnames"
)

// Granularity is the level of date filtering applied to a trip table: none,
// a whole calendar month, or a single day.
type Granularity uint8

const (
	GranularityNone Granularity = iota + 1
	GranularityMonth
	GranularityDay
)

var granularityMap = enumnames.NewMap(map[Granularity]string{
	GranularityNone:  "none",
	GranularityMonth: "month",
	GranularityDay:   "day",
})

func GranularityFromName(name string) (Granularity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	return granularityMap.EnumValueFromName(name)
}

func (granularity Granularity) IsValid() bool {
	return granularityMap.ContainsEnumValue(granularity)
}

func (granularity Granularity) String() string {
	return granularityMap.GetNameOrFallback(granularity, "INVALID_GRANULARITY")
}

// All three datasets hold trips from the first half of 2017, so time periods
// are fixed to that year and month range.
const (
	DataYear       = 2017
	FirstDataMonth = time.January
	LastDataMonth  = time.June
)

// TimePeriod selects an inclusive range of calendar days within a single
// month of the dataset year. The zero granularity selects all data.
type TimePeriod struct {
	Granularity Granularity
	Year        int
	Month       time.Month
	// Inclusive day-of-month bounds: the full month for GranularityMonth, a
	// single day for GranularityDay.
	FirstDay int
	LastDay  int
}

// NoFilter returns the time period selecting all data.
func NoFilter() TimePeriod {
	return TimePeriod{Granularity: GranularityNone}
}

// MonthPeriod returns the time period spanning the first through last
// calendar day of the given month in the dataset year.
func MonthPeriod(month time.Month) (TimePeriod, error) {
	if err := validateDataMonth(month); err != nil {
		return TimePeriod{}, err
	}

	return TimePeriod{
		Granularity: GranularityMonth,
		Year:        DataYear,
		Month:       month,
		FirstDay:    1,
		LastDay:     DaysInMonth(DataYear, month),
	}, nil
}

// DayPeriod returns the time period selecting a single calendar day in the
// dataset year.
func DayPeriod(month time.Month, day int) (TimePeriod, error) {
	if err := validateDataMonth(month); err != nil {
		return TimePeriod{}, err
	}
	if lastDay := DaysInMonth(DataYear, month); day < 1 || day > lastDay {
		return TimePeriod{}, fmt.Errorf(
			"day %d is outside the valid range [1, %d] for %s %d",
			day, lastDay, month, DataYear,
		)
	}

	return TimePeriod{
		Granularity: GranularityDay,
		Year:        DataYear,
		Month:       month,
		FirstDay:    day,
		LastDay:     day,
	}, nil
}

func validateDataMonth(month time.Month) error {
	if month < FirstDataMonth || month > LastDataMonth {
		return fmt.Errorf(
			"month must be between %s and %s, got '%s'", FirstDataMonth, LastDataMonth, month,
		)
	}
	return nil
}

// MonthFromName matches an operator-entered month name, case-insensitively.
func MonthFromName(name string) (time.Month, bool) {
	name = strings.TrimSpace(name)
	for month := time.January; month <= time.December; month++ {
		if strings.EqualFold(name, month.String()) {
			return month, true
		}
	}
	return 0, false
}

// DaysInMonth returns the number of calendar days in the given month,
// respecting leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to this month's last day
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (period TimePeriod) String() string {
	switch period.Granularity {
	case GranularityMonth:
		return fmt.Sprintf("%s %d", period.Month, period.Year)
	case GranularityDay:
		return fmt.Sprintf("%s %d, %d", period.Month, period.FirstDay, period.Year)
	default:
		return "all data"
	}
}

func (period TimePeriod) contains(timestamp time.Time) bool {
	year, month, day := timestamp.Date()
	return year == period.Year &&
		month == period.Month &&
		day >= period.FirstDay &&
		day <= period.LastDay
}

// FilterByPeriod returns a new table holding only the trips whose start
// time's calendar date falls within the period, time of day ignored. Order
// is preserved. The unfiltered table is left unchanged, and the result may
// be empty. For GranularityNone the table itself is returned.
func (table *Table) FilterByPeriod(period TimePeriod) *Table {
	if period.Granularity == GranularityNone {
		return table
	}

	filtered := &Table{
		City:         table.City,
		HasGender:    table.HasGender,
		HasBirthYear: table.HasBirthYear,
	}

	for i, startTime := range table.StartTimes {
		if period.contains(startTime) {
			filtered.appendRecord(table.Record(i))
		}
	}

	log.Debugf(
		"filtered %d of %d trip records for period '%s'",
		filtered.Len(), table.Len(), period,
	)
	return filtered
}
