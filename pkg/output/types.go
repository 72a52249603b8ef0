// Package output renders selected events as output lines.
package output

import (
	"unicode/utf8"

	"github.com/ccollicutt/sdep/pkg/event"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// Record is the JSON shape of one event.
type Record struct {
	// Time is the timestamp rendered with the output format.
	Time string `json:"time"`

	// Text is the trimmed event text.
	Text string `json:"text"`
}

// FormatLine renders one event as timestamp, separator and text, cut to
// maxLen bytes. A maxLen of zero or less disables the cut.
func FormatLine(e event.Event, r *timefmt.Renderer, separator string, maxLen int) string {
	return Truncate(r.Render(e.Time())+separator+e.Text(), maxLen)
}

// Truncate returns at most max bytes of s without splitting a UTF-8
// sequence. A max of zero or less returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
