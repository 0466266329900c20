package prompt

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one prompt row from the input CSV.
type Record struct {
	Row  int
	Text string
}

// ReadCSV loads prompt rows from a CSV file. The first row is the header and
// must contain the named column. Rows shorter than the column index yield an
// empty prompt rather than an error.
func ReadCSV(path, column string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("column %q not found in %s", column, path)
	}

	var records []Record
	row := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", row+1, err)
		}
		text := ""
		if col < len(fields) {
			text = fields[col]
		}
		records = append(records, Record{Row: row, Text: text})
		row++
	}

	return records, nil
}
