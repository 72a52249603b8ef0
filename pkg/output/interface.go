package output

import (
	"context"
	"io"

	"github.com/ccollicutt/sdep/pkg/event"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// Formatter writes selected events in a specific format.
type Formatter interface {
	// Format renders the events, in the order given, to w.
	Format(ctx context.Context, events []event.Event, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Renderer turns event timestamps into text.
	Renderer *timefmt.Renderer

	// Separator is placed between the rendered timestamp and the text.
	Separator string

	// MaxLineLength caps each output line in bytes. Zero means no limit.
	MaxLineLength int
}
