// Package parser reads raw input lines and turns the ones that start with a
// date-time stamp into events.
package parser

// DefaultMaxLineLength is the longest line, in bytes, kept from the input.
// Longer lines are cut and the rest is discarded.
const DefaultMaxLineLength = 10000

// LogLine is a raw input line before timestamp parsing.
type LogLine struct {
	// Content is the line text without its line terminator.
	Content string

	// Source is the file path this line came from.
	Source string

	// LineNum is the 1-based line number in the source file.
	LineNum int
}

// Stats counts what a Load pass did.
type Stats struct {
	// LinesRead is the number of input lines seen.
	LinesRead int

	// EventsParsed is the number of lines that became events.
	EventsParsed int
}
