package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/sdep/pkg/event"
)

// JSONFormatter writes one JSON object per event, one per line.
// MaxLineLength and Separator do not apply.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the events as JSON lines.
func (f *JSONFormatter) Format(ctx context.Context, events []event.Event, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec := Record{
			Time: f.opts.Renderer.Render(e.Time()),
			Text: e.Text(),
		}
		if err := encoder.Encode(rec); err != nil {
			return err
		}
	}

	return nil
}
