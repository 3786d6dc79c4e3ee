package stats_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanstats/bikeshare/stats"
	"github.com/urbanstats/bikeshare/trips"
)

type testTrip struct {
	startTime    time.Time
	duration     float64
	startStation string
	endStation   string
	userType     string
	gender       string
	birthYear    int
}

func newTestTable(withOptionalColumns bool, testTrips ...testTrip) *trips.Table {
	table := &trips.Table{
		City:         trips.CityChicago,
		HasGender:    withOptionalColumns,
		HasBirthYear: withOptionalColumns,
	}

	for _, trip := range testTrips {
		table.StartTimes = append(table.StartTimes, trip.startTime)
		table.EndTimes = append(
			table.EndTimes, trip.startTime.Add(time.Duration(trip.duration)*time.Second),
		)
		table.Durations = append(table.Durations, trip.duration)
		table.StartStations = append(table.StartStations, trip.startStation)
		table.EndStations = append(table.EndStations, trip.endStation)
		table.UserTypes = append(table.UserTypes, trip.userType)
		if withOptionalColumns {
			table.Genders = append(table.Genders, trip.gender)
			table.BirthYears = append(table.BirthYears, trip.birthYear)
		}
	}

	return table
}

func at(month time.Month, day int, hour int) time.Time {
	return time.Date(2017, month, day, hour, 0, 0, 0, time.UTC)
}

func TestPopularStartTimeStatistics(t *testing.T) {
	table := newTestTable(false,
		testTrip{startTime: at(time.January, 2, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.March, 6, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.March, 7, 17), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.March, 13, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
	)

	month, err := stats.PopularMonth(table)
	require.NoError(t, err)
	assert.Equal(t, stats.ValueCount{Value: "March", Count: 3}, month)

	// Jan 2, Mar 6 and Mar 13 2017 are all Mondays
	day, err := stats.PopularDay(table)
	require.NoError(t, err)
	assert.Equal(t, stats.ValueCount{Value: "Monday", Count: 3}, day)

	hour, err := stats.PopularHour(table)
	require.NoError(t, err)
	assert.Equal(t, stats.HourCount{Hour: 8, Count: 3}, hour)
}

func TestStartTimeStatisticsAreOrderInsensitive(t *testing.T) {
	testTrips := []testTrip{
		{startTime: at(time.January, 2, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		{startTime: at(time.March, 6, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		{startTime: at(time.March, 7, 17), startStation: "A", endStation: "B", userType: "Subscriber"},
		{startTime: at(time.March, 13, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		{startTime: at(time.February, 20, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
	}

	table := newTestTable(false, testTrips...)
	expectedMonth, err := stats.PopularMonth(table)
	require.NoError(t, err)
	expectedDay, err := stats.PopularDay(table)
	require.NoError(t, err)
	expectedHour, err := stats.PopularHour(table)
	require.NoError(t, err)

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]testTrip, len(testTrips))
		copy(shuffled, testTrips)
		random.Shuffle(len(shuffled), func(a int, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		shuffledTable := newTestTable(false, shuffled...)

		month, err := stats.PopularMonth(shuffledTable)
		require.NoError(t, err)
		assert.Equal(t, expectedMonth.Count, month.Count)
		assert.Equal(t, expectedMonth.Value, month.Value)

		day, err := stats.PopularDay(shuffledTable)
		require.NoError(t, err)
		assert.Equal(t, expectedDay, day)

		hour, err := stats.PopularHour(shuffledTable)
		require.NoError(t, err)
		assert.Equal(t, expectedHour, hour)
	}
}

func TestTripDuration(t *testing.T) {
	table := newTestTable(false,
		testTrip{startTime: at(time.May, 1, 9), duration: 600, startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.May, 1, 10), duration: 300, startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.May, 1, 11), duration: 450, startStation: "A", endStation: "B", userType: "Subscriber"},
	)

	duration, err := stats.TripDuration(table)
	require.NoError(t, err)
	assert.Equal(t, 1350.0, duration.Total)
	assert.InDelta(t, 450.0, duration.Mean, 1e-9)
	assert.InDelta(t, duration.Total/3, duration.Mean, 1e-9)
}

func TestPopularStationsAndTrip(t *testing.T) {
	// Two A->B trips and one A->C trip: A tops starts with all 3 rides, B
	// tops ends, and A->B is the most popular ordered trip
	table := newTestTable(false,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 9), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 10), startStation: "A", endStation: "C", userType: "Subscriber"},
	)

	stations, err := stats.PopularStations(table)
	require.NoError(t, err)
	assert.Equal(t, stats.ValueCount{Value: "A", Count: 3}, stations.Start)
	assert.Equal(t, stats.ValueCount{Value: "B", Count: 2}, stations.End)

	trip, err := stats.PopularTrip(table)
	require.NoError(t, err)
	assert.Equal(t, stats.ValueCount{Value: "A to B", Count: 2}, trip)
}

func TestPopularTripCountsOrderedPairs(t *testing.T) {
	// B->A is not the same trip as A->B
	table := newTestTable(false,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 9), startStation: "B", endStation: "A", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 10), startStation: "A", endStation: "B", userType: "Subscriber"},
	)

	trip, err := stats.PopularTrip(table)
	require.NoError(t, err)
	assert.Equal(t, stats.ValueCount{Value: "A to B", Count: 2}, trip)
}

func TestTieBreakIsFirstEncounteredAndDeterministic(t *testing.T) {
	table := newTestTable(false,
		testTrip{startTime: at(time.June, 1, 8), startStation: "X", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 9), startStation: "Y", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 10), startStation: "Y", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 11), startStation: "X", endStation: "B", userType: "Subscriber"},
	)

	for i := 0; i < 20; i++ {
		stations, err := stats.PopularStations(table)
		require.NoError(t, err)
		assert.Equal(t, stats.ValueCount{Value: "X", Count: 2}, stations.Start,
			"tied counts must resolve to the first-encountered station on every run")
	}
}

func TestUsersDistribution(t *testing.T) {
	table := newTestTable(false,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Customer"},
		testTrip{startTime: at(time.June, 1, 9), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 10), startStation: "A", endStation: "B", userType: "Subscriber"},
		testTrip{startTime: at(time.June, 1, 11), startStation: "A", endStation: "B", userType: ""},
	)

	users, err := stats.Users(table)
	require.NoError(t, err)
	// Full distribution in descending count order, blanks excluded
	assert.Equal(t, stats.Distribution{
		{Value: "Subscriber", Count: 2},
		{Value: "Customer", Count: 1},
	}, users)
}

func TestGendersDistribution(t *testing.T) {
	table := newTestTable(true,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Subscriber", gender: "Male", birthYear: 1990},
		testTrip{startTime: at(time.June, 1, 9), startStation: "A", endStation: "B", userType: "Subscriber", gender: "Female", birthYear: 1988},
		testTrip{startTime: at(time.June, 1, 10), startStation: "A", endStation: "B", userType: "Customer", gender: "", birthYear: 0},
		testTrip{startTime: at(time.June, 1, 11), startStation: "A", endStation: "B", userType: "Subscriber", gender: "Female", birthYear: 1988},
	)

	genders, err := stats.Genders(table)
	require.NoError(t, err)
	assert.Equal(t, stats.Distribution{
		{Value: "Female", Count: 2},
		{Value: "Male", Count: 1},
	}, genders)
}

func TestBirthYears(t *testing.T) {
	table := newTestTable(true,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Subscriber", birthYear: 1980},
		testTrip{startTime: at(time.June, 1, 9), startStation: "A", endStation: "B", userType: "Subscriber", birthYear: 1980},
		testTrip{startTime: at(time.June, 1, 10), startStation: "A", endStation: "B", userType: "Subscriber", birthYear: 1995},
	)

	birthYears, err := stats.BirthYears(table)
	require.NoError(t, err)
	assert.Equal(t, stats.BirthYearStats{Oldest: 1980, Youngest: 1995, Mode: 1980}, birthYears)
}

func TestBirthYearsSkipsBlankYears(t *testing.T) {
	table := newTestTable(true,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Subscriber", birthYear: 0},
		testTrip{startTime: at(time.June, 1, 9), startStation: "A", endStation: "B", userType: "Subscriber", birthYear: 1972},
	)

	birthYears, err := stats.BirthYears(table)
	require.NoError(t, err)
	assert.Equal(t, stats.BirthYearStats{Oldest: 1972, Youngest: 1972, Mode: 1972}, birthYears)
}

func TestBirthYearsAllBlank(t *testing.T) {
	table := newTestTable(true,
		testTrip{startTime: at(time.June, 1, 8), startStation: "A", endStation: "B", userType: "Subscriber", birthYear: 0},
	)

	_, err := stats.BirthYears(table)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
}

func TestAggregatorsOnEmptyTable(t *testing.T) {
	empty := newTestTable(true)

	_, err := stats.PopularMonth(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.PopularDay(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.PopularHour(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.TripDuration(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.PopularStations(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.PopularTrip(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.Users(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.Genders(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
	_, err = stats.BirthYears(empty)
	assert.ErrorIs(t, err, stats.ErrNoDataInRange)
}

func TestTripDurationMeanHasNoPrecisionDrift(t *testing.T) {
	var testTrips []testTrip
	var expectedTotal float64
	for i := 0; i < 1000; i++ {
		duration := float64(i) + 0.5
		expectedTotal += duration
		testTrips = append(testTrips, testTrip{
			startTime: at(time.June, 1, i%24), duration: duration,
			startStation: "A", endStation: "B", userType: "Subscriber",
		})
	}

	duration, err := stats.TripDuration(newTestTable(false, testTrips...))
	require.NoError(t, err)
	assert.Equal(t, expectedTotal, duration.Total)
	assert.True(t, math.Abs(duration.Mean-expectedTotal/1000) < 1e-9)
}
