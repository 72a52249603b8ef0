// Package event holds parsed events, the append-only store that collects
// them, and the range selection that orders them for output.
package event

import (
	"strings"

	"github.com/ccollicutt/sdep/pkg/datetime"
)

// whitespace is the trim set applied to event text.
const whitespace = " \t\n\r\f\v"

// Event is a parsed timestamp plus the text that followed it.
// The zero Event has a zero timestamp and empty text.
type Event struct {
	time datetime.Value
	text string
}

// New creates an Event. Leading and trailing whitespace is removed from text.
func New(t datetime.Value, text string) Event {
	return Event{time: t, text: Trim(text)}
}

// Time returns the event timestamp.
func (e Event) Time() datetime.Value {
	return e.time
}

// Text returns the trimmed event text. It may be empty.
func (e Event) Text() string {
	return e.text
}

// Trim removes space, tab, newline, carriage return, form feed and
// vertical tab from both ends of s.
func Trim(s string) string {
	return strings.Trim(s, whitespace)
}
