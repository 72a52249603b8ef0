package parser

import (
	"bufio"
	"errors"
	"io"
	"unicode/utf8"
)

// LineReader reads newline-terminated lines and keeps at most maxLen bytes
// of each. The excess of a long line is read and thrown away, so it never
// shows up as a line of its own.
type LineReader struct {
	r      *bufio.Reader
	maxLen int
}

// NewLineReader creates a LineReader. A maxLen of zero or less keeps whole lines.
func NewLineReader(r io.Reader, maxLen int) *LineReader {
	return &LineReader{
		r:      bufio.NewReaderSize(r, 64*1024),
		maxLen: maxLen,
	}
}

// ReadLine returns the next line without its trailing newline.
// A final line without a newline is returned normally; io.EOF follows it.
func (lr *LineReader) ReadLine() (string, error) {
	var buf []byte
	truncated := false
	read := false

	for {
		chunk, err := lr.r.ReadSlice('\n')
		if len(chunk) > 0 {
			read = true
		}
		if err == nil {
			chunk = chunk[:len(chunk)-1]
		}

		if lr.maxLen <= 0 {
			buf = append(buf, chunk...)
		} else if room := lr.maxLen - len(buf); room >= len(chunk) {
			buf = append(buf, chunk...)
		} else {
			buf = append(buf, chunk[:max(room, 0)]...)
			truncated = true
		}

		switch {
		case err == nil:
			return lr.finish(buf, truncated), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if !read {
				return "", io.EOF
			}
			return lr.finish(buf, truncated), nil
		default:
			return "", err
		}
	}
}

// finish drops a UTF-8 sequence left incomplete by truncation.
func (lr *LineReader) finish(buf []byte, truncated bool) string {
	if truncated {
		start := len(buf) - 1
		for start > 0 && len(buf)-start < utf8.UTFMax && !utf8.RuneStart(buf[start]) {
			start--
		}
		if start >= 0 && !utf8.FullRune(buf[start:]) {
			buf = buf[:start]
		}
	}
	return string(buf)
}
