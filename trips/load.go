package trips

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"

	"github.com/urbanstats/bikeshare/csv"
	"github.com/urbanstats/bikeshare/datatypes"
)

// ErrDataUnavailable is returned when a city's dataset is missing or
// malformed. The session cannot continue with partial data, so callers should
// abort with a clear message rather than report statistics over it.
var ErrDataUnavailable = errors.New("city dataset unavailable")

const schemaDeductionRows = 100

// LoadCity reads the given city's CSV file under dataDir into a Table.
// The file's column layout is deduced from its header row and first rows of
// data; required columns are matched by case-insensitive name. Returns an
// error wrapping ErrDataUnavailable if the file is missing, lacks a required
// column, or holds an unparseable timestamp.
func LoadCity(dataDir string, city City) (*Table, error) {
	path := filepath.Join(dataDir, city.FileName())

	file, err := os.Open(path)
	if err != nil {
		return nil, wrap.Errorf(ErrDataUnavailable, "failed to open '%s': %v", path, err)
	}
	defer file.Close()

	reader, err := csv.NewReader(file, false)
	if err != nil {
		return nil, wrap.Errorf(ErrDataUnavailable, "failed to read '%s': %v", path, err)
	}

	schema, err := datatypes.DeduceDataSchema(reader, schemaDeductionRows)
	if err != nil {
		return nil, wrap.Errorf(ErrDataUnavailable, "failed to deduce schema of '%s': %v", path, err)
	}

	columns, err := mapTripColumns(schema)
	if err != nil {
		return nil, wrap.Errorf(ErrDataUnavailable, "unexpected column layout in '%s': %v", path, err)
	}

	if _, err := reader.ReadHeaderRow(); err != nil {
		return nil, wrap.Errorf(ErrDataUnavailable, "failed to skip header row of '%s': %v", path, err)
	}

	table := &Table{
		City:         city,
		HasGender:    columns.gender != -1,
		HasBirthYear: columns.birthYear != -1,
	}

	for {
		row, rowNumber, done, err := reader.ReadRow()
		if done {
			break
		}
		if err != nil {
			return nil, wrap.Errorf(ErrDataUnavailable, "failed to read row %d of '%s': %v", rowNumber, path, err)
		}

		record, err := columns.parseRecord(row)
		if err != nil {
			return nil, wrap.Errorf(ErrDataUnavailable, "invalid trip record on row %d of '%s': %v", rowNumber, path, err)
		}

		table.appendRecord(record)
	}

	log.Debugf("loaded %d trip records from '%s'", table.Len(), path)
	return table, nil
}

// tripColumns maps the trip record fields to their column indices in a city
// file's schema. Optional columns are -1 when absent.
type tripColumns struct {
	startTime    int
	endTime      int
	duration     int
	startStation int
	endStation   int
	userType     int
	gender       int
	birthYear    int
}

func mapTripColumns(schema datatypes.Schema) (tripColumns, error) {
	columns := tripColumns{
		startTime:    schema.ColumnIndex("Start Time"),
		endTime:      schema.ColumnIndex("End Time"),
		duration:     schema.ColumnIndex("Trip Duration"),
		startStation: schema.ColumnIndex("Start Station"),
		endStation:   schema.ColumnIndex("End Station"),
		userType:     schema.ColumnIndex("User Type"),
		gender:       schema.ColumnIndex("Gender"),
		birthYear:    schema.ColumnIndex("Birth Year"),
	}

	var errs []error
	for _, required := range []struct {
		name  string
		index int
	}{
		{"Start Time", columns.startTime},
		{"End Time", columns.endTime},
		{"Trip Duration", columns.duration},
		{"Start Station", columns.startStation},
		{"End Station", columns.endStation},
		{"User Type", columns.userType},
	} {
		if required.index == -1 {
			errs = append(errs, errors.New("missing required column '"+required.name+"'"))
			continue
		}

		column := schema.Columns[required.index]
		switch required.name {
		case "Start Time", "End Time":
			if column.DataType != datatypes.DataTypeTimestamp {
				errs = append(errs, fmt.Errorf(
					"column '%s' holds %s values, expected timestamps",
					required.name, column.DataType,
				))
			}
		case "Trip Duration":
			if !column.DataType.IsNumeric() {
				errs = append(errs, fmt.Errorf(
					"column '%s' holds %s values, expected numbers",
					required.name, column.DataType,
				))
			}
		}
	}

	if len(errs) > 0 {
		return tripColumns{}, wrap.Errors("schema is missing required trip columns", errs...)
	}
	return columns, nil
}

func (columns tripColumns) parseRecord(row []string) (Record, error) {
	var record Record
	var err error

	if record.StartTime, err = datatypes.ParseTimestamp(row[columns.startTime]); err != nil {
		return Record{}, wrap.Error(err, "invalid start time")
	}
	if record.EndTime, err = datatypes.ParseTimestamp(row[columns.endTime]); err != nil {
		return Record{}, wrap.Error(err, "invalid end time")
	}
	if record.Duration, err = strconv.ParseFloat(row[columns.duration], 64); err != nil {
		return Record{}, wrap.Error(err, "invalid trip duration")
	}

	record.StartStation = row[columns.startStation]
	record.EndStation = row[columns.endStation]
	record.UserType = row[columns.userType]

	if columns.gender != -1 {
		record.Gender = row[columns.gender]
	}
	if columns.birthYear != -1 {
		if field := row[columns.birthYear]; field != "" {
			// Some city files write birth years as floats ('1992.0')
			year, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Record{}, wrap.Error(err, "invalid birth year")
			}
			record.BirthYear = int(year)
		}
	}

	return record, nil
}
