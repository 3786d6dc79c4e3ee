// Package report drives a full statistics session: it loads the chosen
// city's trip table, applies the chosen time-period filter, runs every
// applicable aggregator in fixed order, and formats the results. Each stage
// is timed, and a failing stage never prevents later stages from running.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"hermannm.dev/devlog/log"

	"github.com/urbanstats/bikeshare/config"
	"github.com/urbanstats/bikeshare/prompt"
	"github.com/urbanstats/bikeshare/stats"
	"github.com/urbanstats/bikeshare/trips"
)

var headingColor = color.New(color.FgCyan, color.Bold)

// Session runs one statistics report from city choice through the restart
// prompt. City and Period, when set, replace the corresponding prompts for
// non-interactive runs.
type Session struct {
	Config   config.Config
	Prompter *prompt.Prompter
	Out      io.Writer

	City   *trips.City
	Period *trips.TimePeriod
}

// Run executes the session and reports whether the operator asked to restart.
// A missing or malformed dataset aborts the report, but the restart prompt is
// still offered so the operator can pick another city.
func (session *Session) Run() (restart bool, err error) {
	fmt.Fprint(session.Out, "\nHello! Let's explore some US bikeshare data!\n\n")

	if err := session.report(); err != nil {
		if errors.Is(err, prompt.ErrInputClosed) {
			return false, err
		}
		log.ErrorCause(err, "failed to compute statistics")
	}

	if session.City != nil && session.Period != nil {
		// Fully scripted runs have nobody to answer the restart prompt
		return false, nil
	}
	return session.Prompter.Restart()
}

func (session *Session) report() error {
	city, err := session.resolveCity()
	if err != nil {
		return err
	}

	start := time.Now()
	table, err := trips.LoadCity(session.Config.DataDir, city)
	if err != nil {
		return err
	}
	fmt.Fprintf(session.Out, "Loading data took: %.2f seconds.\n\n", time.Since(start).Seconds())

	period, err := session.resolvePeriod()
	if err != nil {
		return err
	}

	if period.Granularity != trips.GranularityNone {
		start = time.Now()
		table = table.FilterByPeriod(period)
		fmt.Fprintf(
			session.Out, "Filtering data took: %.2f seconds.\n\n", time.Since(start).Seconds(),
		)
	}

	headingColor.Fprint(session.Out, "\n=== Statistics ===\n\n")
	session.reportStatistics(table, period)

	if session.City != nil && session.Period != nil {
		return nil
	}

	viewRecords, err := session.Prompter.YesNo("\nView individual trip data? ('yes' or 'no'): ")
	if err != nil {
		return err
	}
	if viewRecords {
		if err := session.displayRecords(table); err != nil {
			return err
		}
	}

	return nil
}

func (session *Session) resolveCity() (trips.City, error) {
	if session.City != nil {
		return *session.City, nil
	}
	return session.Prompter.City()
}

func (session *Session) resolvePeriod() (trips.TimePeriod, error) {
	if session.Period != nil {
		return *session.Period, nil
	}
	return session.Prompter.TimePeriod()
}

// reportStatistics runs the aggregators in fixed order, applying the skip
// rules for filter granularity and optional columns. Aggregator failures are
// reported in place and never stop the remaining statistics.
func (session *Session) reportStatistics(table *trips.Table, period trips.TimePeriod) {
	// A month or day filter narrows the data to a single month, making the
	// most popular month trivial
	if period.Granularity == trips.GranularityNone {
		session.stage(func() (string, error) {
			month, err := stats.PopularMonth(table)
			if err != nil {
				return "Most popular month not available in filtered data.", err
			}
			return fmt.Sprintf("%s is the most popular month: %d rides.", month.Value, month.Count), nil
		})
	}

	// A day filter likewise narrows the data to a single weekday
	if period.Granularity != trips.GranularityDay {
		session.stage(func() (string, error) {
			day, err := stats.PopularDay(table)
			if err != nil {
				return "Most popular day not available in filtered data.", err
			}
			return fmt.Sprintf("%s is the most popular day: %d rides.", day.Value, day.Count), nil
		})
	}

	session.stage(func() (string, error) {
		hour, err := stats.PopularHour(table)
		if err != nil {
			return "Most popular hour not available in filtered data.", err
		}
		return fmt.Sprintf("%d is the most popular hour: %d rides.", hour.Hour, hour.Count), nil
	})

	session.stage(func() (string, error) {
		duration, err := stats.TripDuration(table)
		if err != nil {
			return "Trip durations not available in filtered data.", err
		}
		return fmt.Sprintf(
			"Total trip duration: %.0f minutes\nAverage trip duration: %.2f minutes",
			duration.Total, duration.Mean,
		), nil
	})

	session.stage(func() (string, error) {
		stations, err := stats.PopularStations(table)
		if err != nil {
			return "Popular stations not available in filtered data.", err
		}
		return fmt.Sprintf(
			"\"%s\" is the most popular starting station: %d rides.\n"+
				"\"%s\" is the most popular ending station: %d rides.",
			stations.Start.Value, stations.Start.Count,
			stations.End.Value, stations.End.Count,
		), nil
	})

	session.stage(func() (string, error) {
		trip, err := stats.PopularTrip(table)
		if err != nil {
			return "Popular trip not available in filtered data.", err
		}
		return fmt.Sprintf("\"%s\" is the most popular trip: %d rides.", trip.Value, trip.Count), nil
	})

	session.stage(func() (string, error) {
		users, err := stats.Users(table)
		if err != nil {
			return "User type counts not available in filtered data.", err
		}
		return "User type counts:\n" + session.renderDistribution("User Type", users), nil
	})

	if table.HasGender {
		session.stage(func() (string, error) {
			genders, err := stats.Genders(table)
			if err != nil {
				return "Gender counts not available in filtered data.", err
			}
			return "Gender counts:\n" + session.renderDistribution("Gender", genders), nil
		})
	} else {
		fmt.Fprint(session.Out, "Gender data not available.\n\n")
	}

	if table.HasBirthYear {
		session.stage(func() (string, error) {
			birthYears, err := stats.BirthYears(table)
			if err != nil {
				return "Birth year statistics not available in filtered data.", err
			}
			return fmt.Sprintf(
				"Oldest birth year: %d\nNewest birth year: %d\nMost common birth year: %d",
				birthYears.Oldest, birthYears.Youngest, birthYears.Mode,
			), nil
		})
	} else {
		fmt.Fprint(session.Out, "Birth year data not available.\n\n")
	}
}

// stage runs a single statistic, printing its result with a wall-clock
// duration annotation. A stage hitting ErrNoDataInRange prints its
// not-available message instead; any other error is a defect worth logging,
// but still must not stop the session.
func (session *Session) stage(compute func() (message string, err error)) {
	start := time.Now()
	message, err := compute()

	switch {
	case err == nil:
		fmt.Fprintf(
			session.Out, "%s\n(%.2f seconds)\n\n", message, time.Since(start).Seconds(),
		)
	case errors.Is(err, stats.ErrNoDataInRange):
		fmt.Fprintf(session.Out, "%s\n\n", message)
	default:
		log.ErrorCause(err, "statistic failed")
		fmt.Fprintf(session.Out, "%s\n\n", message)
	}
}
