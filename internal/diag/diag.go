// Package diag routes diagnostics to the console when there is one and to the
// platform debug-output channel otherwise.
package diag

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/term"
)

// NewLogger returns a text logger writing to stderr when it is a terminal and
// to the debug-output channel otherwise.
func NewLogger(level slog.Level) *slog.Logger {
	var w io.Writer = os.Stderr
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		w = DebugOutput()
	}
	return newLogger(w, level)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DebugOutput returns a writer for the debug-output channel. Each Write is
// delivered as complete lines.
func DebugOutput() io.Writer {
	return &lineWriter{emit: outputDebugString}
}

// lineWriter buffers partial lines so a debugger sees whole records.
type lineWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line; keep it for the next write.
			w.buf.Reset()
			w.buf.Write(line)
			break
		}
		w.emit(string(line))
	}
	return len(p), nil
}
