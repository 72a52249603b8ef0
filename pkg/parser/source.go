package parser

import (
	"context"
	"fmt"
	"io"
	"os"
)

// FileSource implements LineSource for reading from files in order.
// The name StdinName reads from standard input instead of a file.
type FileSource struct {
	files   []string
	maxLen  int
	stdin   io.Reader
	current *os.File
	reader  *LineReader

	currentSource string
	currentLine   int
	fileIndex     int
}

// FileSourceOption configures a FileSource.
type FileSourceOption func(*FileSource)

// WithStdin sets the reader used for StdinName (default os.Stdin).
func WithStdin(r io.Reader) FileSourceOption {
	return func(s *FileSource) {
		s.stdin = r
	}
}

// NewFileSource creates a LineSource that reads the given files one after
// another. Lines longer than maxLen bytes are truncated.
func NewFileSource(files []string, maxLen int, opts ...FileSourceOption) *FileSource {
	s := &FileSource{
		files:     files,
		maxLen:    maxLen,
		stdin:     os.Stdin,
		fileIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next line.
// Returns io.EOF when all files have been exhausted.
func (s *FileSource) Next(ctx context.Context) (*LogLine, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.reader == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		line, err := s.reader.ReadLine()
		if err == nil {
			s.currentLine++
			return &LogLine{
				Content: line,
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		if err != io.EOF {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	s.currentSource = path
	s.currentLine = 0

	if path == StdinName {
		s.reader = NewLineReader(s.stdin, s.maxLen)
		return nil
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening input file %s: %w", path, err)
	}

	s.current = f
	s.reader = NewLineReader(f, s.maxLen)
	return nil
}

func (s *FileSource) closeCurrentFile() error {
	s.reader = nil
	if s.current != nil {
		err := s.current.Close()
		s.current = nil
		return err
	}
	return nil
}

// ReaderSource implements LineSource over a single io.Reader.
type ReaderSource struct {
	name   string
	reader *LineReader
	line   int
}

// NewReaderSource creates a LineSource reading from r. name is reported as
// the Source of each line.
func NewReaderSource(r io.Reader, name string, maxLen int) *ReaderSource {
	return &ReaderSource{
		name:   name,
		reader: NewLineReader(r, maxLen),
	}
}

// Next returns the next line, or io.EOF at the end of the reader.
func (s *ReaderSource) Next(ctx context.Context) (*LogLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	line, err := s.reader.ReadLine()
	if err != nil {
		return nil, err
	}

	s.line++
	return &LogLine{Content: line, Source: s.name, LineNum: s.line}, nil
}

// Close is a no-op; the caller owns the reader.
func (s *ReaderSource) Close() error {
	return nil
}
