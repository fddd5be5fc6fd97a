package errors

import (
	"fmt"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() { colorEnabled = false }

// EnableColors enables ANSI color output.
func EnableColors() { colorEnabled = true }

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

// Format renders the error for terminal display.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString(color(colorRed+colorBold, "ERROR"))
	if e.Code != "" {
		b.WriteString(" " + e.Code)
	}
	b.WriteString(": " + e.Message + "\n")

	if e.Detail != "" {
		b.WriteString("\n  " + e.Detail + "\n")
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, "\n  cause: %v\n", e.Wrapped)
	}
	if e.Suggestion != "" {
		b.WriteString("\n  " + color(colorCyan, "Hint: ") + e.Suggestion + "\n")
	}
	return b.String()
}
