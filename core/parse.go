// Package core has the pure computation for formula-menang: lenient
// parsing, candidate aggregation, baseline validation, seat building
// and the seat metrics engine. Nothing in this package does I/O.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseDelimited turns comma-delimited text with a header row into one
// key-value record per data row. Rows whose field count does not match
// the header are dropped. Dirty partial files are the steady state for
// this data, so a bad row never aborts the load.
func ParseDelimited(text string) []map[string]string {
	lines := splitLines(strings.TrimSpace(text))
	if len(lines) == 0 {
		return nil
	}

	headers := splitFields(lines[0])
	records := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) != len(headers) {
			continue
		}
		record := make(map[string]string, len(headers))
		for i, header := range headers {
			record[header] = fields[i]
		}
		records = append(records, record)
	}
	return records
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, field := range fields {
		fields[i] = strings.TrimSpace(field)
	}
	return fields
}

// ToNumber coerces a raw field to a float64. Missing, empty and
// non-numeric values become 0. This is the single lenient coercion
// point for all parsers; it never fails.
func ToNumber(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ToInt coerces a raw field to an int via ToNumber, truncating any
// fractional part.
func ToInt(value string) int {
	return int(ToNumber(value))
}
