package parser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func collectLines(t *testing.T, src LineSource) []*LogLine {
	t.Helper()

	ctx := context.Background()
	var lines []*LogLine

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		lines = append(lines, line)
	}

	return lines
}

func TestFileSource_Next(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")
	content := `2024-01-15 10:00 First line
not a date
2024-01-15 10:02 Third line
`
	if err := os.WriteFile(logFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{logFile}, DefaultMaxLineLength)
	defer source.Close()

	lines := collectLines(t, source)

	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3", len(lines))
	}
	if lines[0].LineNum != 1 || lines[2].LineNum != 3 {
		t.Errorf("LineNum = %d, %d, want 1, 3", lines[0].LineNum, lines[2].LineNum)
	}
	if lines[0].Source != logFile {
		t.Errorf("Source = %q, want %q", lines[0].Source, logFile)
	}
	if lines[1].Content != "not a date" {
		t.Errorf("Content = %q, want %q", lines[1].Content, "not a date")
	}
}

func TestFileSource_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	files := []struct {
		name    string
		content string
	}{
		{"b.log", "2024-01-15 10:00 File B\n"},
		{"a.log", "2024-01-15 09:00 File A\n"},
	}

	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	source := NewFileSource(paths, DefaultMaxLineLength)
	defer source.Close()

	lines := collectLines(t, source)

	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	// Files are read in the order given.
	if !strings.HasSuffix(lines[0].Content, "File B") {
		t.Errorf("first line = %q, want File B", lines[0].Content)
	}
	if lines[1].LineNum != 1 {
		t.Errorf("LineNum restarts per file, got %d", lines[1].LineNum)
	}
}

func TestFileSource_Stdin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.log")
	if err := os.WriteFile(path, []byte("from file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{StdinName, path}, DefaultMaxLineLength,
		WithStdin(strings.NewReader("from stdin\n")))
	defer source.Close()

	lines := collectLines(t, source)

	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[0].Content != "from stdin" || lines[0].Source != StdinName {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[1].Content != "from file" {
		t.Errorf("lines[1] = %+v", lines[1])
	}
}

func TestFileSource_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "empty.log")
	if err := os.WriteFile(logFile, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{logFile}, DefaultMaxLineLength)
	defer source.Close()

	if lines := collectLines(t, source); len(lines) != 0 {
		t.Errorf("Got %d lines from empty file, want 0", len(lines))
	}
}

func TestFileSource_FileNotFound(t *testing.T) {
	source := NewFileSource([]string{"/nonexistent/file.log"}, DefaultMaxLineLength)
	defer source.Close()

	_, err := source.Next(context.Background())
	if err == nil {
		t.Error("Next() expected error for missing file")
	}
}

func TestFileSource_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")
	if err := os.WriteFile(logFile, []byte("line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{logFile}, DefaultMaxLineLength)
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Next(ctx)
	if err != context.Canceled {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}

func TestReaderSource(t *testing.T) {
	source := NewReaderSource(strings.NewReader("one\ntwo"), "<stdin>", 0)
	defer source.Close()

	lines := collectLines(t, source)

	if len(lines) != 2 {
		t.Fatalf("Got %d lines, want 2", len(lines))
	}
	if lines[1].Content != "two" || lines[1].LineNum != 2 || lines[1].Source != "<stdin>" {
		t.Errorf("lines[1] = %+v", lines[1])
	}
}
