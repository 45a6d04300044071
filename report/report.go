package report

import (
	"fmt"
	"io"
	"virustrace/graph"
)

// Writer prints search traces and verdicts in human readable form.
type Writer struct {
	w        io.Writer
	showPath bool
}

// NewWriter writes to w; showPath adds the full infection path to the verdict.
func NewWriter(w io.Writer, showPath bool) *Writer {
	return &Writer{w: w, showPath: showPath}
}

// TraceLine formats a single expansion.
func TraceLine(t graph.Trace) string {
	return fmt.Sprintf("At computer %d checking for communications after time %d, but within %d", t.Node, t.Floor, t.Bound)
}

// Verdict formats the outcome of a search.
func Verdict(res graph.Result) string {
	if !res.Found {
		return "Safe!"
	}
	return fmt.Sprintf("Virus will affect computer %d at time %d through computer %d", res.Hop.Node, res.Hop.Time, res.Hop.Via)
}

// Trace is suitable for graph.WithTracer.
func (w *Writer) Trace(t graph.Trace) {
	fmt.Fprintln(w.w, TraceLine(t))
}

// Start announces the computer the traversal begins at.
func (w *Writer) Start(source int64) {
	fmt.Fprintln(w.w, "The traversal of the graph is:")
	fmt.Fprintf(w.w, "Starting from: %d\n", source)
}

// Result prints the verdict and, when enabled, the path.
func (w *Writer) Result(res graph.Result) {
	fmt.Fprintln(w.w, Verdict(res))
	if !w.showPath || !res.Found {
		return
	}
	fmt.Fprintln(w.w, "Path:")
	for i, hop := range res.Path {
		fmt.Fprintf(w.w, "  %d. %d -> %d at time %d\n", i+1, hop.Via, hop.Node, hop.Time)
	}
}
