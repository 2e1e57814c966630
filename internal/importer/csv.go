package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader reads comma-separated sheets.
type CSVReader struct{}

// Format returns the reader name.
func (CSVReader) Format() string { return "csv" }

// Rows reads all CSV records. Rows may have varying lengths; short
// rows are the importer's problem, not the codec's.
func (CSVReader) Rows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}
