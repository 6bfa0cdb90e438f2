package rest

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// CausePrefix starts every cause line of the debug format.
const CausePrefix = "Caused by: "

// Chain renders display followed by one "Caused by: " line per step of the
// errors.Unwrap chain starting at cause.
func Chain(display string, cause error) string {
	var b strings.Builder
	b.WriteString(display)
	for ; cause != nil; cause = errors.Unwrap(cause) {
		b.WriteByte('\n')
		b.WriteString(CausePrefix)
		b.WriteString(cause.Error())
	}
	return b.String()
}

// Format implements fmt.Formatter for generated variants. %+v prints the
// cause chain, %v and %s print the display text, %q quotes it.
func Format(s fmt.State, verb rune, display string, cause error) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, Chain(display, cause))
			return
		}
		_, _ = io.WriteString(s, display)
	case 's':
		_, _ = io.WriteString(s, display)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", display)
	default:
		_, _ = fmt.Fprintf(s, "%%!%c(%s)", verb, display)
	}
}
