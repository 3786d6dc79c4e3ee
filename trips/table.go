package trips

import (
	"strconv"
	"time"
)

// Table holds a city's trip records in columnar form, in the order they
// appeared in the source file. Gender and BirthYear columns are only present
// for datasets whose schema carries them, signaled by HasGender/HasBirthYear.
type Table struct {
	City City

	StartTimes    []time.Time
	EndTimes      []time.Time
	Durations     []float64
	StartStations []string
	EndStations   []string
	UserTypes     []string

	// Blank gender fields are kept as empty strings, and blank birth years as
	// zero. Aggregators skip them when counting.
	Genders    []string
	BirthYears []int

	HasGender    bool
	HasBirthYear bool
}

func (table *Table) Len() int {
	return len(table.StartTimes)
}

// Record is a single trip in row form, used for raw-record display.
type Record struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     float64
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    int
}

func (table *Table) Record(i int) Record {
	record := Record{
		StartTime:    table.StartTimes[i],
		EndTime:      table.EndTimes[i],
		Duration:     table.Durations[i],
		StartStation: table.StartStations[i],
		EndStation:   table.EndStations[i],
		UserType:     table.UserTypes[i],
	}
	if table.HasGender {
		record.Gender = table.Genders[i]
	}
	if table.HasBirthYear {
		record.BirthYear = table.BirthYears[i]
	}
	return record
}

// ColumnNames returns display headers for the table's columns, omitting the
// optional columns when the source dataset lacks them.
func (table *Table) ColumnNames() []string {
	names := []string{
		"Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type",
	}
	if table.HasGender {
		names = append(names, "Gender")
	}
	if table.HasBirthYear {
		names = append(names, "Birth Year")
	}
	return names
}

const displayTimeLayout = "2006-01-02 15:04:05"

// DisplayFields returns the record at index i formatted for display, in the
// same order as ColumnNames. Blank optional fields stay blank.
func (table *Table) DisplayFields(i int) []string {
	fields := []string{
		table.StartTimes[i].Format(displayTimeLayout),
		table.EndTimes[i].Format(displayTimeLayout),
		strconv.FormatFloat(table.Durations[i], 'f', -1, 64),
		table.StartStations[i],
		table.EndStations[i],
		table.UserTypes[i],
	}
	if table.HasGender {
		fields = append(fields, table.Genders[i])
	}
	if table.HasBirthYear {
		if year := table.BirthYears[i]; year != 0 {
			fields = append(fields, strconv.Itoa(year))
		} else {
			fields = append(fields, "")
		}
	}
	return fields
}

func (table *Table) appendRecord(record Record) {
	table.StartTimes = append(table.StartTimes, record.StartTime)
	table.EndTimes = append(table.EndTimes, record.EndTime)
	table.Durations = append(table.Durations, record.Duration)
	table.StartStations = append(table.StartStations, record.StartStation)
	table.EndStations = append(table.EndStations, record.EndStation)
	table.UserTypes = append(table.UserTypes, record.UserType)
	if table.HasGender {
		table.Genders = append(table.Genders, record.Gender)
	}
	if table.HasBirthYear {
		table.BirthYears = append(table.BirthYears, record.BirthYear)
	}
}
