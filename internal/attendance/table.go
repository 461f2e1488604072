package attendance

// table.go reads the tab-delimited attendance export and validates its
// header before any rows are interpreted.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Input column names.
const (
	ColumnFullName   = "Full Name"
	ColumnUserAction = "User Action"
	ColumnTimestamp  = "Timestamp"
)

// RequiredColumns lists the columns every attendance log must carry.
var RequiredColumns = []string{ColumnFullName, ColumnUserAction, ColumnTimestamp}

// SchemaError reports required columns absent from the header.
type SchemaError struct {
	Required []string // All required columns
	Missing  []string // The subset not found
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("CSV file does not have the required columns: %s", strings.Join(e.Required, ", "))
}

// Table is a parsed tab-delimited file: the header plus raw data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable parses tab-delimited UTF-8 text. Quotes are handled leniently and
// rows may have any number of fields. Blank lines are dropped.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}

	t := &Table{}
	for _, rec := range records {
		if isEmptyRow(rec) {
			continue
		}
		if t.Header == nil {
			t.Header = rec
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// headerIndex maps normalized column names to their position.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		key := normalizeColumn(h)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// normalizeColumn trims whitespace, a stray BOM and surrounding quotes, and
// lowercases the name.
func normalizeColumn(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks that every required column is present and returns the
// positions of the required columns in RequiredColumns order.
func (t *Table) Validate() ([]int, error) {
	idx := makeHeaderIndex(t.Header)

	positions := make([]int, 0, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		pos, ok := idx[normalizeColumn(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		positions = append(positions, pos)
	}

	if len(missing) > 0 {
		return nil, &SchemaError{
			Required: append([]string(nil), RequiredColumns...),
			Missing:  missing,
		}
	}
	return positions, nil
}

// Events validates the header and converts every row to an Event. Short rows
// read as empty cells.
func (t *Table) Events() ([]Event, error) {
	positions, err := t.Validate()
	if err != nil {
		return nil, err
	}
	namePos, actionPos, tsPos := positions[0], positions[1], positions[2]

	events := make([]Event, 0, len(t.Rows))
	for i, row := range t.Rows {
		events = append(events, Event{
			FullName:  strings.TrimSpace(cell(row, namePos)),
			Action:    strings.TrimSpace(cell(row, actionPos)),
			Timestamp: ParseInstant(cell(row, tsPos)),
			Row:       i + 1,
		})
	}
	return events, nil
}

func cell(row []string, pos int) string {
	if pos < len(row) {
		return row[pos]
	}
	return ""
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
