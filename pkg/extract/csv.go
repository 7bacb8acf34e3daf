package extract

import (
	"encoding/csv"
	"strings"

	"github.com/textmend/textmend/pkg/record"
)

// CSV parses header-plus-rows content into one record per data row, keyed by
// the header names. Comma is the primary delimiter; semicolon and a naive
// split-by-comma serve as fallbacks when structured parsing fails. Missing
// trailing cells default to the empty string.
func CSV(content string) []record.Record {
	rows, err := readRows(content, ',')
	if err != nil {
		rows, err = readRows(content, ';')
	}
	if err != nil {
		rows = naiveRows(content)
	}
	if len(rows) < 2 {
		return nil
	}

	headers := rows[0]
	records := make([]record.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make(map[string]any, len(headers))
		for i, header := range headers {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			cells[strings.TrimSpace(header)] = value
		}
		records = append(records, record.TableRow{Cells: cells})
	}
	return records
}

func readRows(content string, comma rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func naiveRows(content string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, fields)
	}
	return rows
}
