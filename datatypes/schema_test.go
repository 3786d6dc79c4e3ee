package datatypes

import (
	"testing"
	"time"
)

func TestDeduceColumnTypesFromTripRows(t *testing.T) {
	schema := NewSchema([]string{
		"Start Time", "End Time", "Trip Duration", "Start Station", "User Type", "Birth Year",
	})

	rows := [][]string{
		{"2017-01-01 00:07:57", "2017-01-01 00:20:53", "776", "Wood St & Hubbard St", "Subscriber", "1992.0"},
		{"2017-02-14 09:15:00", "2017-02-14 09:30:00", "900", "Clark St & Lake St", "Customer", ""},
	}
	for _, row := range rows {
		if err := schema.DeduceColumnTypesFromRow(row); err != nil {
			t.Fatal(err)
		}
	}

	expectedTypes := []DataType{
		DataTypeTimestamp,
		DataTypeTimestamp,
		DataTypeInt,
		DataTypeText,
		DataTypeText,
		DataTypeFloat,
	}
	for i, expected := range expectedTypes {
		if actual := schema.Columns[i].DataType; actual != expected {
			t.Errorf(
				"expected column '%s' to deduce as %s, got %s",
				schema.Columns[i].Name, expected, actual,
			)
		}
	}

	if !schema.Columns[5].Optional {
		t.Error("expected column with blank field to be marked optional")
	}
	if schema.Columns[0].Optional {
		t.Error("expected column without blank fields to not be marked optional")
	}
}

func TestDeduceColumnTypesMergesIntAndFloat(t *testing.T) {
	schema := NewSchema([]string{"Trip Duration"})

	if err := schema.DeduceColumnTypesFromRow([]string{"776"}); err != nil {
		t.Fatal(err)
	}
	if err := schema.DeduceColumnTypesFromRow([]string{"776.3"}); err != nil {
		t.Fatal(err)
	}

	if schema.Columns[0].DataType != DataTypeFloat {
		t.Errorf("expected mixed int/float column to widen to Float, got %s", schema.Columns[0].DataType)
	}
}

func TestDeduceColumnTypesRejectsConflicts(t *testing.T) {
	schema := NewSchema([]string{"Trip Duration"})

	if err := schema.DeduceColumnTypesFromRow([]string{"776"}); err != nil {
		t.Fatal(err)
	}
	if err := schema.DeduceColumnTypesFromRow([]string{"Subscriber"}); err == nil {
		t.Error("expected error for conflicting Integer and Text values in same column")
	}
}

func TestDeduceUUIDColumn(t *testing.T) {
	schema := NewSchema([]string{"Trip ID"})

	if err := schema.DeduceColumnTypesFromRow(
		[]string{"ab579874-4df4-4d39-b896-8f7a36a0b5e5"},
	); err != nil {
		t.Fatal(err)
	}

	if schema.Columns[0].DataType != DataTypeUUID {
		t.Errorf("expected UUID column, got %s", schema.Columns[0].DataType)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	expected := time.Date(2017, time.January, 1, 0, 7, 57, 0, time.UTC)

	for _, field := range []string{"2017-01-01 00:07:57", "2017-01-01T00:07:57Z"} {
		parsed, err := ParseTimestamp(field)
		if err != nil {
			t.Fatalf("failed to parse '%s': %v", field, err)
		}
		if !parsed.Equal(expected) {
			t.Errorf("expected '%s' to parse as %s, got %s", field, expected, parsed)
		}
	}

	if _, err := ParseTimestamp("01/01/2017 00:07"); err == nil {
		t.Error("expected error for unsupported timestamp layout")
	}
}

func TestColumnIndexMatchesCaseInsensitively(t *testing.T) {
	schema := NewSchema([]string{"Start Time", "Gender", " Birth Year "})

	if index := schema.ColumnIndex("start time"); index != 0 {
		t.Errorf("expected index 0 for 'start time', got %d", index)
	}
	if index := schema.ColumnIndex("GENDER"); index != 1 {
		t.Errorf("expected index 1 for 'GENDER', got %d", index)
	}
	if index := schema.ColumnIndex("birth year"); index != 2 {
		t.Errorf("expected index 2 for padded 'Birth Year' header, got %d", index)
	}
	if index := schema.ColumnIndex("Gender Identity"); index != -1 {
		t.Errorf("expected -1 for absent column, got %d", index)
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := NewSchema([]string{"Start Time", "End Time"})
	if err := schema.DeduceColumnTypesFromRow([]string{"2017-01-01 00:07:57", ""}); err != nil {
		t.Fatal(err)
	}

	// End Time never got a non-blank value, so its type is still unknown
	if errs := schema.Validate(); len(errs) != 1 {
		t.Errorf("expected 1 validation error for typeless column, got %d", len(errs))
	}
}
