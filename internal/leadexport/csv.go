// Package leadexport turns stored leads into downloadable CSV and XLSX files.
package leadexport

import (
	"fmt"
	"strings"

	"github.com/wolfman30/rollerup-site/internal/leads"
)

// Row is one record to export. Keys fixes the column order; the first row's
// Keys become the header for the whole file.
type Row struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value for key, nil when absent.
func (r Row) Get(key string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[key]
}

// FromLead projects a lead into a Row using the lead's natural key order.
func FromLead(lead leads.Lead) Row {
	row := Row{
		Keys:   make([]string, 0, len(leads.FieldOrder)),
		Values: make(map[string]any, len(leads.FieldOrder)),
	}
	for _, f := range leads.FieldOrder {
		row.Keys = append(row.Keys, string(f))
		row.Values[string(f)] = lead.Value(f)
	}
	return row
}

// RowsFromLeads projects every lead, preserving order.
func RowsFromLeads(records []leads.Lead) []Row {
	rows := make([]Row, 0, len(records))
	for _, lead := range records {
		rows = append(rows, FromLead(lead))
	}
	return rows
}

// Header returns the column keys taken from the first row.
func Header(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Keys
}

// ToCSV renders rows as CSV text.
//
// The header line holds the first row's keys joined by commas, unquoted.
// Every data cell is wrapped in double quotes with embedded quotes doubled.
// Later rows are projected onto the header keys by name. Lines are joined by
// "\n" with no trailing newline, and no rows gives "".
func ToCSV(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	header := Header(rows)

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, key := range header {
			cells[i] = quote(cellString(row.Get(key)))
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// cellString renders a value as cell text. Missing values are empty and
// lists are comma-joined.
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = cellString(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
