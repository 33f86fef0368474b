package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Table renders column-aligned output for run summaries and device listings.
// The header row and its dash underline are emitted lazily on the first Row,
// so a table that receives no rows prints nothing at all.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	prefix  string
	started bool
}

// NewTable creates a stdout table with the given column headers.
func NewTable(headers ...string) *Table {
	return NewTableTo(os.Stdout, headers...)
}

// NewTableTo creates a table writing to w.
func NewTableTo(w io.Writer, headers ...string) *Table {
	return &Table{
		w:       tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
		headers: headers,
	}
}

// WithPrefix prepends prefix to every emitted line, header and underline
// included. Used to indent per-device sub-tables inside a larger report.
func (t *Table) WithPrefix(prefix string) *Table {
	t.prefix = prefix
	return t
}

// Row appends one row. The header block is written before the first row.
func (t *Table) Row(values ...string) {
	t.start()
	fmt.Fprintln(t.w, t.prefix+strings.Join(values, "\t"))
}

// Flush writes the buffered table. A table with no rows stays silent.
func (t *Table) Flush() {
	if !t.started {
		return
	}
	t.w.Flush()
}

func (t *Table) start() {
	if t.started {
		return
	}
	t.started = true
	fmt.Fprintln(t.w, t.prefix+strings.Join(t.headers, "\t"))
	underline := make([]string, len(t.headers))
	for i, h := range t.headers {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(t.w, t.prefix+strings.Join(underline, "\t"))
}
