// Package ui renders tables, parallel-task progress, and dependency
// diagnostics for the pkgws CLI.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle = lipgloss.NewStyle().Faint(true)
)

// Table renders rows of data in aligned columns. Cells stay unstyled so the
// tabwriter's width accounting is not thrown off by escape sequences.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return &Table{w: tw}
}

// Row appends a row of values. The number of values should match the number
// of headers.
func (t *Table) Row(values ...any) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}

// Progress tracks completion of parallel per-project tasks with a counter
// display. Safe for concurrent use.
type Progress struct {
	out       io.Writer
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n tasks.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Done marks one task as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total, label)
}

// Skip marks one task as completed without doing work.
func (p *Progress) Skip(label string) {
	p.Done(dimStyle.Render(label + " (skipped)"))
}

// PrintDiagnostics renders validation failures, one block per mismatch, and
// a styled summary line.
func PrintDiagnostics(out io.Writer, errs []error) {
	for _, err := range errs {
		_, _ = fmt.Fprintln(out, errStyle.Render("✗")+" "+err.Error())
	}
	if n := len(errs); n > 0 {
		_, _ = fmt.Fprintln(out, errStyle.Render(fmt.Sprintf("%d dependency problem(s) found", n)))
	}
}
