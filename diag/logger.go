package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
)

// maxRepeats is how many times the same deprecation tag is printed in
// full before being collapsed into the end-of-run summary count.
const maxRepeats = 5

// DeprecationStatus classifies how a deprecation tag should be
// handled, per the Logger configuration set in spec.md §4.7/§6.
type DeprecationStatus int

const (
	DeprecationWarn DeprecationStatus = iota
	DeprecationSilenced
	DeprecationFatal
	DeprecationFutureOptIn
)

// Logger is the warning/debug sink described in spec.md §4.7. It
// limits repetitions of the same deprecation tag -- a capability the
// prior LESS implementation has no equivalent for (LESS has no @warn),
// generalizing the "print everything, every time" behavior every naive
// compiler starts with.
type Logger struct {
	Out     io.Writer
	Quiet   bool // suppress @warn/@debug entirely
	Verbose bool // emit every repetition instead of limiting

	deprecations map[string]DeprecationStatus
	counts       map[string]int
	warnCount    int
}

// NewLogger returns a Logger writing to stderr by default.
func NewLogger() *Logger {
	return &Logger{
		Out:          os.Stderr,
		deprecations: make(map[string]DeprecationStatus),
		counts:       make(map[string]int),
	}
}

// SetDeprecationStatus configures how a deprecation tag is treated;
// corresponds to the fatal_deprecations/future_deprecations/
// silence_deprecations configuration set in spec.md §6.
func (l *Logger) SetDeprecationStatus(tag string, status DeprecationStatus) {
	l.deprecations[tag] = status
}

// Warn emits a plain @warn-style message with the current stack
// trace, subject to the Quiet flag.
func (l *Logger) Warn(message string, trace []Frame) {
	if l.Quiet {
		return
	}
	l.warnCount++
	fmt.Fprintf(l.Out, "Warning: %s\n", message)
	for _, f := range trace {
		fmt.Fprintf(l.Out, "    %s\n", f.Label)
	}
}

// Deprecated emits a tagged deprecation warning. Fatal deprecations
// are surfaced to the caller as a RuntimeError instead of printed;
// repeated non-fatal warnings beyond maxRepeats are counted but
// suppressed until the run-end Summary, unless Verbose is set.
func (l *Logger) Deprecated(tag, message string, span Span) error {
	status := l.deprecations[tag]
	if status == DeprecationSilenced {
		return nil
	}
	if status == DeprecationFatal {
		return &RuntimeError{Span: span, Message: fmt.Sprintf("%s (fatal deprecation %s)", message, tag)}
	}
	l.counts[tag]++
	if l.Quiet {
		return nil
	}
	if l.Verbose || l.counts[tag] <= maxRepeats {
		fmt.Fprintf(l.Out, "Deprecation Warning [%s]: %s\n", tag, message)
	}
	return nil
}

// Debug emits an @debug message as "Debug: value"; the span argument
// is not printed.
func (l *Logger) Debug(span Span, message string) {
	if l.Quiet {
		return
	}
	fmt.Fprintf(l.Out, "Debug: %s\n", message)
}

// DebugDump prints a deep structural dump of an arbitrary value using
// go-spew, the way the prior implementation's expression evaluator used
// spew.Dump while developing guard-condition preprocessing. Called
// after every @debug statement (eval/stmt.go); a no-op unless Verbose
// is set, which cmd/sassgo's "compile -verbose" flag turns on.
func (l *Logger) DebugDump(label string, v interface{}) {
	if l.Quiet || !l.Verbose {
		return
	}
	fmt.Fprintf(l.Out, "%s:\n%s", label, spew.Sdump(v))
}

// Summary prints the end-of-run repetition counts for any deprecation
// tag that exceeded maxRepeats, per spec.md §4.7.
func (l *Logger) Summary() {
	if l.Quiet {
		return
	}
	for tag, n := range l.counts {
		if n > maxRepeats {
			fmt.Fprintf(l.Out, "%d repetitive deprecation warnings omitted for %s.\n", n-maxRepeats, tag)
		}
	}
}
