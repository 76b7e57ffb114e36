package export

import (
	"strings"

	"github.com/glowbooth/media-export/common"
)

type CsvRow map[string]string

type CsvColumn struct {
	Header string
	Field  string
}

// RenderCsv renders rows to CSV with every field double-quoted
// unconditionally and embedded quotes doubled. Quoting everything keeps the
// escaping rules trivial: no special cases for embedded commas or newlines.
// An empty rows input is an error so we never hand the user a header-only
// file.
func RenderCsv(columns []CsvColumn, rows []CsvRow) (string, error) {
	if len(rows) == 0 {
		return "", common.ErrNothingToExport
	}

	sb := &strings.Builder{}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = escapeCsvField(col.Header)
	}
	sb.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		sb.WriteString("\n")
		fields := make([]string, len(columns))
		for i, col := range columns {
			fields[i] = escapeCsvField(row[col.Field])
		}
		sb.WriteString(strings.Join(fields, ","))
	}

	return sb.String(), nil
}

func escapeCsvField(value string) string {
	return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
}
