package output

import (
	"bufio"
	"context"
	"io"

	"github.com/ccollicutt/sdep/pkg/event"
)

// TextFormatter writes one newline-terminated line per event.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the events as text lines.
func (f *TextFormatter) Format(ctx context.Context, events []event.Event, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := FormatLine(e, f.opts.Renderer, f.opts.Separator, f.opts.MaxLineLength)
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
