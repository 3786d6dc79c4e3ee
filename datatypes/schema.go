package datatypes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"hermannm.dev/wrap"
)

type Schema struct {
	Columns []Column
}

type Column struct {
	Name     string
	DataType DataType
	// Optional is set if any sampled row left this column's field blank.
	Optional bool
}

// Timestamp layouts accepted for timestamp columns, tried in order. City trip
// files write timestamps as '2017-01-01 00:07:57', without zone information.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func ParseTimestamp(field string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if value, err := time.Parse(layout, field); err == nil {
			return value, nil
		}
	}
	return time.Time{}, fmt.Errorf("value '%s' does not match any known timestamp layout", field)
}

func NewSchema(columnNames []string) Schema {
	columns := make([]Column, 0, len(columnNames))
	for _, columnName := range columnNames {
		columns = append(columns, Column{Name: columnName, DataType: 0, Optional: false})
	}

	return Schema{Columns: columns}
}

// ColumnIndex looks up a column by case-insensitive name match, returning its
// index in the schema, or -1 if the schema has no such column.
func (schema Schema) ColumnIndex(name string) int {
	for i, column := range schema.Columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), name) {
			return i
		}
	}
	return -1
}

func (schema Schema) DeduceColumnTypesFromRow(row []string) error {
	if len(row) > len(schema.Columns) {
		return errors.New("row contains more fields than there are columns")
	}

	for i, field := range row {
		column := schema.Columns[i]

		deducedType, isBlank := deduceColumnTypeFromField(field)
		switch {
		case isBlank:
			column.Optional = true
		case !column.DataType.IsValid():
			column.DataType = deducedType
		case column.DataType != deducedType:
			merged, compatible := mergeColumnTypes(column.DataType, deducedType)
			if !compatible {
				return fmt.Errorf(
					"found incompatible data types '%s' and '%s' in column '%s'",
					column.DataType,
					deducedType,
					column.Name,
				)
			}
			column.DataType = merged
		}

		schema.Columns[i] = column
	}

	return nil
}

func deduceColumnTypeFromField(field string) (deducedType DataType, isBlank bool) {
	if field == "" {
		return 0, true
	}
	if _, err := strconv.ParseInt(field, 10, 64); err == nil {
		return DataTypeInt, false
	}
	if _, err := strconv.ParseFloat(field, 64); err == nil {
		return DataTypeFloat, false
	}
	if _, err := ParseTimestamp(field); err == nil {
		return DataTypeTimestamp, false
	}
	if _, err := uuid.Parse(field); err == nil {
		return DataTypeUUID, false
	}
	return DataTypeText, false
}

// Integer fields may appear in a column that later turns out to hold floats
// (birth years are written as '1992.0' in some files), so Integer widens to
// Float rather than conflicting.
func mergeColumnTypes(previous DataType, deduced DataType) (merged DataType, compatible bool) {
	if previous.IsNumeric() && deduced.IsNumeric() {
		return DataTypeFloat, true
	}
	return 0, false
}

func (schema Schema) Validate() []error {
	var errs []error

	for i, column := range schema.Columns {
		if err := column.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("column %d ('%s'): %w", i, column.Name, err))
		}
	}

	return errs
}

func (column Column) Validate() error {
	if column.Name == "" {
		return errors.New("column name is blank")
	}

	if !column.DataType.IsValid() {
		return errors.New("invalid column data type")
	}

	return nil
}

// DeduceDataSchema reads up to maxRowsToCheck rows from the given source
// (after its header row) to deduce a data type for every column.
func DeduceDataSchema(source ResettableDataSource, maxRowsToCheck int) (schema Schema, err error) {
	// Resets source position before returning, so its data can be read subsequently
	defer func() {
		if resetErr := source.ResetReadPosition(false); resetErr != nil {
			err = wrap.Error(resetErr, "failed to reset CSV file after deducing its column types")
		}
	}()

	columnNames, err := source.ReadHeaderRow()
	if err != nil {
		return Schema{}, wrap.Error(err, "failed to read CSV column names from header row")
	}

	schema = NewSchema(columnNames)

	for rowsChecked := 0; rowsChecked < maxRowsToCheck; rowsChecked++ {
		row, rowNumber, done, err := source.ReadRow()
		if done {
			break
		}
		if err != nil {
			return Schema{}, wrap.Error(err, "failed to read CSV file")
		}

		if err := schema.DeduceColumnTypesFromRow(row); err != nil {
			return Schema{}, wrap.Errorf(
				err, "failed to parse CSV field types from row %d", rowNumber,
			)
		}
	}

	if errs := schema.Validate(); len(errs) > 0 {
		return Schema{}, wrap.Errors(
			"failed to deduce data types for all given CSV columns", errs...,
		)
	}

	return schema, nil
}

// ResettableDataSource is a DataSource whose read position can be rewound,
// allowing schema deduction before a full read of the same source.
type ResettableDataSource interface {
	DataSource
	ReadHeaderRow() (row []string, err error)
	ResetReadPosition(skipHeaderRow bool) error
}
