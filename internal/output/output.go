// Package output renders taskdeck data as tables, JSON, compact lines or
// markdown.
package output

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto defers to TASKDECK_OUTPUT and then the table default.
	FormatAuto Format = iota
	FormatJSON
	FormatTable
	FormatCompact
)

// EnvFormat names the environment variable consulted when no format flag
// is set.
const EnvFormat = "TASKDECK_OUTPUT"

var formatNames = map[string]Format{
	"json":    FormatJSON,
	"table":   FormatTable,
	"compact": FormatCompact,
	"oneline": FormatCompact,
}

// ParseFormat maps a format name to a Format. Unknown names yield
// FormatAuto.
func ParseFormat(name string) Format {
	return formatNames[strings.ToLower(strings.TrimSpace(name))]
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTable:
		return "table"
	case FormatCompact:
		return "compact"
	}
	return "auto"
}

// Detect picks the format from the global flags, then TASKDECK_OUTPUT.
// --json beats --compact beats --table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f := ParseFormat(os.Getenv(EnvFormat)); f != FormatAuto {
		return f
	}
	return FormatTable
}

// ColorSupported reports whether w is a terminal that should receive
// color, honoring NO_COLOR and CLICOLOR_FORCE.
func ColorSupported(w io.Writer) bool {
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}
