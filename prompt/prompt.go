// Package prompt implements the operator's data-entry interface: each prompt
// loops read → validate until it gets a valid response, reporting invalid
// input without ever aborting the session.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/urbanstats/bikeshare/trips"
)

// ErrInputClosed is returned when the input stream ends mid-prompt, e.g. when
// a scripted session's input runs out. Unlike invalid responses, this cannot
// be recovered by re-prompting.
var ErrInputClosed = errors.New("operator input closed")

var invalidInputColor = color.New(color.FgYellow)

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (prompter *Prompter) ask(question string) (string, error) {
	fmt.Fprint(prompter.out, question)

	if !prompter.in.Scan() {
		fmt.Fprintln(prompter.out)
		if err := prompter.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}

	return strings.TrimSpace(prompter.in.Text()), nil
}

func (prompter *Prompter) invalid(message string) {
	invalidInputColor.Fprintf(prompter.out, "%s\n\n", message)
}

// City prompts until the operator enters one of the three city names
// (case-insensitive).
func (prompter *Prompter) City() (trips.City, error) {
	question := fmt.Sprintf(
		"Which city would you like to view? (%s): ",
		strings.Join(trips.CityNames(), ", "),
	)

	for {
		response, err := prompter.ask(question)
		if err != nil {
			return 0, err
		}

		if city, ok := trips.CityFromName(response); ok {
			return city, nil
		}
		prompter.invalid("An invalid city was entered.")
	}
}

// TimePeriod prompts for a filter granularity, then for the month and day the
// chosen granularity requires.
func (prompter *Prompter) TimePeriod() (trips.TimePeriod, error) {
	for {
		response, err := prompter.ask("Filter data? ('month', 'day', or 'none'): ")
		if err != nil {
			return trips.TimePeriod{}, err
		}

		granularity, ok := trips.GranularityFromName(response)
		if !ok {
			prompter.invalid("An invalid filter was entered.")
			continue
		}

		switch granularity {
		case trips.GranularityNone:
			return trips.NoFilter(), nil
		case trips.GranularityMonth:
			month, err := prompter.month()
			if err != nil {
				return trips.TimePeriod{}, err
			}
			return trips.MonthPeriod(month)
		case trips.GranularityDay:
			month, err := prompter.month()
			if err != nil {
				return trips.TimePeriod{}, err
			}
			day, err := prompter.day(month)
			if err != nil {
				return trips.TimePeriod{}, err
			}
			return trips.DayPeriod(month, day)
		}
	}
}

func (prompter *Prompter) month() (time.Month, error) {
	question := fmt.Sprintf(
		"\nWhich month? %s through %s? ", trips.FirstDataMonth, trips.LastDataMonth,
	)

	for {
		response, err := prompter.ask(question)
		if err != nil {
			return 0, err
		}

		month, ok := trips.MonthFromName(response)
		if !ok || month < trips.FirstDataMonth || month > trips.LastDataMonth {
			prompter.invalid("An invalid month was entered.")
			continue
		}
		return month, nil
	}
}

func (prompter *Prompter) day(month time.Month) (int, error) {
	lastDay := trips.DaysInMonth(trips.DataYear, month)
	question := fmt.Sprintf(
		"\nWhich day of %s %d? Valid days are [1...%d]: ", month, trips.DataYear, lastDay,
	)

	for {
		response, err := prompter.ask(question)
		if err != nil {
			return 0, err
		}

		day, err := strconv.Atoi(response)
		if err != nil || day < 1 || day > lastDay {
			prompter.invalid("An invalid day was entered.")
			continue
		}
		return day, nil
	}
}

// YesNo prompts until the operator answers 'yes' or 'no'.
func (prompter *Prompter) YesNo(question string) (bool, error) {
	for {
		response, err := prompter.ask(question)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(response) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		prompter.invalid("An invalid response was entered.")
	}
}

// Restart asks whether to start a fresh session. Anything other than 'yes'
// quits.
func (prompter *Prompter) Restart() (bool, error) {
	response, err := prompter.ask("\nWould you like to restart? ('yes', or anything else to quit): ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(response, "yes"), nil
}

// Continue asks whether to show the next page of raw records. Anything other
// than 'c'/'continue' stops.
func (prompter *Prompter) Continue() (bool, error) {
	response, err := prompter.ask("Continue? ('c', anything else to stop): ")
	if err != nil {
		return false, err
	}

	response = strings.ToLower(response)
	return response == "c" || response == "continue", nil
}
