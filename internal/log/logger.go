package log

import (
	"fmt"
	"io"
)

// Logger writes pipeline progress messages to W and, when Verbose is
// true, additional diagnostic detail. Output goes to the configured
// writer (typically stderr). A nil writer silences everything.
type Logger struct {
	Verbose bool
	W       io.Writer
}

// Printf writes a formatted progress message to W.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.W == nil {
		return
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// Debugf writes a formatted diagnostic message to W when Verbose is true.
// It is a no-op otherwise.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || l.W == nil || !l.Verbose {
		return
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}
