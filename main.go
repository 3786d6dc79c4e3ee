package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"hermannm.dev/devlog"
	"hermannm.dev/wrap"

	"github.com/urbanstats/bikeshare/config"
	"github.com/urbanstats/bikeshare/prompt"
	"github.com/urbanstats/bikeshare/report"
	"github.com/urbanstats/bikeshare/trips"
)

var (
	dataDirFlag string
	cityFlag    string
	filterFlag  string
	monthFlag   string
	dayFlag     int
)

var rootCmd = &cobra.Command{
	Use:   "bikeshare",
	Short: "Descriptive statistics over US bikeshare trip data",
	Long: `bikeshare computes descriptive statistics over bicycle-share trip records
for Chicago, New York or Washington, optionally filtered to a single month or
day of the first half of 2017.

Run without flags for an interactive session. Pass --city and --filter to
answer the prompts up front:

  bikeshare --city chicago --filter none
  bikeshare --city "new york" --filter month --month june
  bikeshare --city washington --filter day --month february --day 14`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "directory holding the city CSV files")
	rootCmd.Flags().StringVar(&cityFlag, "city", "", "city to report on, skipping the city prompt")
	rootCmd.Flags().StringVar(&filterFlag, "filter", "", "filter granularity: 'month', 'day' or 'none'")
	rootCmd.Flags().StringVar(&monthFlag, "month", "", "month name for --filter month/day")
	rootCmd.Flags().IntVar(&dayFlag, "day", 0, "day of month for --filter day")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	conf, err := config.ReadFromEnv()
	if err != nil {
		return wrap.Error(err, "failed to read config from env")
	}
	if dataDirFlag != "" {
		conf.DataDir = dataDirFlag
	}

	logLevel := slog.LevelInfo
	if conf.Debug {
		logLevel = slog.LevelDebug
	}
	logHandler := devlog.NewHandler(os.Stderr, &devlog.Options{Level: logLevel})
	slog.SetDefault(slog.New(logHandler))

	city, period, err := selectorsFromFlags()
	if err != nil {
		return err
	}

	session := report.Session{
		Config:   conf,
		Prompter: prompt.NewPrompter(os.Stdin, os.Stdout),
		Out:      os.Stdout,
		City:     city,
		Period:   period,
	}

	// Explicit restart loop: every restart is a brand-new session with a
	// fresh load, the previous trip table is dropped
	for {
		restart, err := session.Run()
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

// selectorsFromFlags turns the --city and --filter flag group into the
// session's preset selectors, leaving them nil (prompted interactively) when
// the flags are unset.
func selectorsFromFlags() (*trips.City, *trips.TimePeriod, error) {
	var city *trips.City
	if cityFlag != "" {
		matched, ok := trips.CityFromName(cityFlag)
		if !ok {
			return nil, nil, fmt.Errorf("unknown city '%s'", cityFlag)
		}
		city = &matched
	}

	if filterFlag == "" {
		return city, nil, nil
	}

	granularity, ok := trips.GranularityFromName(filterFlag)
	if !ok {
		return nil, nil, fmt.Errorf("invalid value '%s' for --filter", filterFlag)
	}

	var period trips.TimePeriod
	switch granularity {
	case trips.GranularityNone:
		period = trips.NoFilter()
	case trips.GranularityMonth, trips.GranularityDay:
		month, err := monthFromFlag()
		if err != nil {
			return nil, nil, err
		}

		if granularity == trips.GranularityMonth {
			period, err = trips.MonthPeriod(month)
		} else {
			if dayFlag == 0 {
				return nil, nil, fmt.Errorf("--filter day requires --day")
			}
			period, err = trips.DayPeriod(month, dayFlag)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	return city, &period, nil
}

func monthFromFlag() (time.Month, error) {
	if monthFlag == "" {
		return 0, fmt.Errorf("--filter %s requires --month", filterFlag)
	}
	month, ok := trips.MonthFromName(monthFlag)
	if !ok {
		return 0, fmt.Errorf("unknown month '%s'", monthFlag)
	}
	return month, nil
}
