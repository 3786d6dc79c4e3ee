// Package stats computes the descriptive statistics reported for a city's
// trip table. Every function here is pure: tables are read, never modified,
// and results carry no reference back into the table.
package stats

import (
	"errors"
	"fmt"

	"github.com/urbanstats/bikeshare/trips"
)

// ErrNoDataInRange is returned by every aggregator when given an empty trip
// table, e.g. after filtering to a day with no recorded trips. Callers should
// report the statistic as not available and continue.
var ErrNoDataInRange = errors.New("no trip data in the selected time period")

// ValueCount pairs a statistic's value with the number of trips it occurred
// in.
type ValueCount struct {
	Value string
	Count int
}

// PopularMonth returns the calendar month with the most trip starts. Only
// meaningful on unfiltered tables: a month- or day-filtered table trivially
// has a single month.
func PopularMonth(table *trips.Table) (ValueCount, error) {
	if table.Len() == 0 {
		return ValueCount{}, ErrNoDataInRange
	}

	months := newCounter[string]()
	for _, startTime := range table.StartTimes {
		months.Add(startTime.Month().String())
	}

	month, count, _ := months.Top()
	return ValueCount{Value: month, Count: count}, nil
}

// PopularDay returns the weekday with the most trip starts.
func PopularDay(table *trips.Table) (ValueCount, error) {
	if table.Len() == 0 {
		return ValueCount{}, ErrNoDataInRange
	}

	days := newCounter[string]()
	for _, startTime := range table.StartTimes {
		days.Add(startTime.Weekday().String())
	}

	day, count, _ := days.Top()
	return ValueCount{Value: day, Count: count}, nil
}

// HourCount pairs an hour of day (24-hour clock) with a trip count.
type HourCount struct {
	Hour  int
	Count int
}

// PopularHour returns the hour of day with the most trip starts.
func PopularHour(table *trips.Table) (HourCount, error) {
	if table.Len() == 0 {
		return HourCount{}, ErrNoDataInRange
	}

	hours := newCounter[int]()
	for _, startTime := range table.StartTimes {
		hours.Add(startTime.Hour())
	}

	hour, count, _ := hours.Top()
	return HourCount{Hour: hour, Count: count}, nil
}

// DurationStats holds the sum and arithmetic mean of the trip duration
// column, in the unit the source dataset stores durations in.
type DurationStats struct {
	Total float64
	Mean  float64
}

func TripDuration(table *trips.Table) (DurationStats, error) {
	if table.Len() == 0 {
		return DurationStats{}, ErrNoDataInRange
	}

	var total float64
	for _, duration := range table.Durations {
		total += duration
	}

	return DurationStats{Total: total, Mean: total / float64(table.Len())}, nil
}

// StationStats holds the most popular start and end stations, counted
// independently of each other.
type StationStats struct {
	Start ValueCount
	End   ValueCount
}

func PopularStations(table *trips.Table) (StationStats, error) {
	if table.Len() == 0 {
		return StationStats{}, ErrNoDataInRange
	}

	starts := newCounter[string]()
	ends := newCounter[string]()
	for i := range table.StartStations {
		starts.Add(table.StartStations[i])
		ends.Add(table.EndStations[i])
	}

	startStation, startCount, _ := starts.Top()
	endStation, endCount, _ := ends.Top()
	return StationStats{
		Start: ValueCount{Value: startStation, Count: startCount},
		End:   ValueCount{Value: endStation, Count: endCount},
	}, nil
}

// PopularTrip returns the most common trip as its ordered (start, end)
// station pair, formatted as "start to end". A trip and its reverse count
// separately.
func PopularTrip(table *trips.Table) (ValueCount, error) {
	if table.Len() == 0 {
		return ValueCount{}, ErrNoDataInRange
	}

	type stationPair struct {
		start string
		end   string
	}

	pairs := newCounter[stationPair]()
	for i := range table.StartStations {
		pairs.Add(stationPair{start: table.StartStations[i], end: table.EndStations[i]})
	}

	pair, count, _ := pairs.Top()
	return ValueCount{
		Value: fmt.Sprintf("%s to %s", pair.start, pair.end),
		Count: count,
	}, nil
}

// Distribution is a full count of a categorical column's values, in
// descending order of count, ties kept in first-encountered order.
type Distribution []ValueCount

func countDistribution(values []string) Distribution {
	counts := newCounter[string]()
	for _, value := range values {
		// Blank fields mean the record carried no value for this column
		if value != "" {
			counts.Add(value)
		}
	}

	distribution := make(Distribution, 0, len(counts.order))
	for _, entry := range counts.Sorted() {
		distribution = append(distribution, ValueCount{Value: entry.Value, Count: entry.Count})
	}
	return distribution
}

// Users returns the trip counts of every user type in the table.
func Users(table *trips.Table) (Distribution, error) {
	if table.Len() == 0 {
		return nil, ErrNoDataInRange
	}
	return countDistribution(table.UserTypes), nil
}

// Genders returns the trip counts of every rider gender in the table. Only
// valid for tables whose source dataset carries a gender column.
func Genders(table *trips.Table) (Distribution, error) {
	if table.Len() == 0 {
		return nil, ErrNoDataInRange
	}
	return countDistribution(table.Genders), nil
}

// BirthYearStats holds the extremes and mode of the rider birth year column.
// Oldest is the lowest year, youngest the highest.
type BirthYearStats struct {
	Oldest   int
	Youngest int
	Mode     int
}

// BirthYears computes birth year statistics over the table, skipping records
// without a birth year. Only valid for tables whose source dataset carries a
// birth year column.
func BirthYears(table *trips.Table) (BirthYearStats, error) {
	if table.Len() == 0 {
		return BirthYearStats{}, ErrNoDataInRange
	}

	years := newCounter[int]()
	result := BirthYearStats{}
	for _, year := range table.BirthYears {
		if year == 0 {
			continue
		}

		if result.Oldest == 0 || year < result.Oldest {
			result.Oldest = year
		}
		if year > result.Youngest {
			result.Youngest = year
		}
		years.Add(year)
	}

	mode, _, ok := years.Top()
	if !ok {
		// Birth year column present, but blank for every record in range
		return BirthYearStats{}, ErrNoDataInRange
	}

	result.Mode = mode
	return result, nil
}
