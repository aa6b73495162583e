package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// prefix decorates the log tag with ANSI colour when writing to a terminal.
func (h *LogHandler) prefix(tag string) string {
	if h.Out == nil && isatty.IsTerminal(os.Stderr.Fd()) {
		return "\x1b[31m[rosetta " + tag + "]\x1b[0m"
	}
	return "[rosetta " + tag + "]"
}

// HandleError logs a UIError.
func (h *LogHandler) HandleError(err *UIError) {
	if err == nil {
		return
	}
	w := h.out()
	if h.Verbose {
		fmt.Fprintf(w, "%s %s [%s]", h.prefix("error"), err.Op, err.Kind)
		if err.Element != "" {
			fmt.Fprintf(w, " element=%s", err.Element)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "%s %s: %v\n", h.prefix("error"), err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	if err.Op != "" {
		fmt.Fprintf(w, "%s %s: %v\n", h.prefix("panic"), err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "%s %v\n", h.prefix("panic"), err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandleRebuildError logs a RebuildError.
func (h *LogHandler) HandleRebuildError(err *RebuildError) {
	if err == nil {
		return
	}
	w := h.out()
	fmt.Fprintf(w, "%s %s\n", h.prefix("rebuild"), err.Error())
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
