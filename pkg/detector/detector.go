// Package detector guesses the input format of a log file by matching
// sample lines against a catalogue of common date-time prefixes.
package detector

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ccollicutt/sdep/pkg/datetime"
	"github.com/ccollicutt/sdep/pkg/parser"
)

// DetectionResult holds the result of analyzing a log file.
type DetectionResult struct {
	Matches       []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines  int           // Number of lines sampled
	ParsedLines   int           // Number of lines with detected timestamps
	AmbiguityNote string        // Warning about date ordering if applicable
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format     *TimestampFormat
	Confidence float64        // 0.0 to 1.0 (percentage of lines matched)
	MatchCount int            // Number of lines that matched
	SampleLine string         // Example line that matched
	ParsedTime datetime.Value // Parsed timestamp from sample
}

// Detector analyzes log files to identify timestamp formats.
type Detector struct {
	formats    []*TimestampFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile analyzes a log file and returns detected formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines analyzes a slice of log lines.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	type formatStats struct {
		format     *TimestampFormat
		matchCount int
		sampleLine string
		parsedTime datetime.Value
	}

	stats := make([]*formatStats, len(d.formats))
	for i, format := range d.formats {
		stats[i] = &formatStats{format: format}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		for _, s := range stats {
			parsed, _, ok := s.format.Layout.Match(line)
			if !ok {
				continue
			}
			if s.matchCount == 0 {
				s.sampleLine = trimmed
				s.parsedTime = parsed
			}
			s.matchCount++
		}
	}

	for _, s := range stats {
		if s.matchCount == 0 {
			continue
		}
		result.Matches = append(result.Matches, FormatMatch{
			Format:     s.format,
			Confidence: float64(s.matchCount) / float64(len(lines)),
			MatchCount: s.matchCount,
			SampleLine: s.sampleLine,
			ParsedTime: s.parsedTime,
		})
	}

	// Sort by confidence descending, then by format length (more specific first)
	sort.SliceStable(result.Matches, func(i, j int) bool {
		if result.Matches[i].Confidence != result.Matches[j].Confidence {
			return result.Matches[i].Confidence > result.Matches[j].Confidence
		}
		return len(result.Matches[i].Format.Format) > len(result.Matches[j].Format.Format)
	})

	if len(result.Matches) > 0 {
		result.ParsedLines = result.Matches[0].MatchCount
	}

	if len(result.Matches) > 0 && result.Matches[0].Format.Ambiguous {
		result.AmbiguityNote = "This format has date ordering ambiguity (MM/DD vs DD/MM). " +
			"Verify the input format matches your log. " +
			"For European dates (DD/MM/YYYY), use format: \"%d/%m/%Y %H:%M:%S\""
	}

	return result
}

// sampleFile reads up to sampleSize non-empty, non-comment lines from the
// head of a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src := parser.NewReaderSource(file, path, parser.DefaultMaxLineLength)

	var lines []string
	for len(lines) < d.sampleSize {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		trimmed := strings.TrimSpace(line.Content)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line.Content)
		}
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
