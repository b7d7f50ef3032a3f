package interchange

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV decodes interchange rows from CSV text. Columns are matched by
// header name, so column order does not matter and unrecognized columns are
// ignored. A missing column simply leaves its field blank.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		rows = append(rows, Row{
			Project:            get("Project"),
			Budget:             get("Budget"),
			CreatedAt:          get("CreatedAt"),
			ExpenseAmount:      get("ExpenseAmount"),
			ExpenseDescription: get("ExpenseDescription"),
			ExpenseDate:        get("ExpenseDate"),
		})
	}

	return rows, nil
}

// WriteCSV encodes interchange rows as CSV text with the canonical header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Project, row.Budget, row.CreatedAt, row.ExpenseAmount, row.ExpenseDescription, row.ExpenseDate}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
