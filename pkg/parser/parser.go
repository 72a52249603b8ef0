package parser

import (
	"context"
	"errors"
	"io"

	"github.com/ccollicutt/sdep/pkg/event"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

// Parser turns raw lines into events using an input layout.
type Parser struct {
	layout *timefmt.Layout
}

// New creates a Parser for the given input layout.
func New(layout *timefmt.Layout) *Parser {
	return &Parser{layout: layout}
}

// ParseLine matches a date-time prefix of line. On success the rest of the
// line, trimmed, becomes the event text. Lines without a matching prefix
// return false and are otherwise ignored.
func (p *Parser) ParseLine(line string) (event.Event, bool) {
	ts, rest, ok := p.layout.Match(line)
	if !ok {
		return event.Event{}, false
	}
	return event.New(ts, rest), true
}

// Load reads src to the end and appends every parsed event to store in
// read order.
func (p *Parser) Load(ctx context.Context, src LineSource, store *event.Store) (Stats, error) {
	var stats Stats

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, err
		}

		stats.LinesRead++

		if e, ok := p.ParseLine(line.Content); ok {
			store.Append(e)
			stats.EventsParsed++
		}
	}
}
