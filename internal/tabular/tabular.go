package tabular

import (
	"fmt"
	"os"
	"strings"
)

// Row maps a trimmed header name to the trimmed raw cell under it. Every
// header is present in every row; short lines map trailing headers to "".
type Row map[string]string

type Table struct {
	Headers []string
	Rows    []Row
}

// ParseError reports input that cannot be interpreted as a delimited table.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

// Load reads a tab-separated file whose first line is the header row.
// Values are split on the raw delimiter only: a cell containing a tab is
// not representable, matching the files this tool consumes.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(string(raw), path)
}

// Parse splits delimited text into headers and header-keyed rows. Empty
// lines are skipped; an input with no header line fails.
func Parse(text, path string) (*Table, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Path: path, Reason: "missing header line"}
	}

	lines := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")

	headers := strings.Split(lines[0], "\t")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := &Table{Headers: headers}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, "\t")
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = strings.TrimSpace(values[i])
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
