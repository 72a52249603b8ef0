package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/ccollicutt/sdep/pkg/datetime"
	"github.com/ccollicutt/sdep/pkg/event"
	"github.com/ccollicutt/sdep/pkg/timefmt"
)

func TestParser_ParseLine(t *testing.T) {
	p := New(timefmt.MustLayout(timefmt.DefaultFormat))

	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantTime datetime.Value
		wantText string
	}{
		{
			name:     "valid line",
			line:     "2024-01-01 09:00 task A",
			wantOK:   true,
			wantTime: datetime.Date(2024, 1, 1, 9, 0),
			wantText: "task A",
		},
		{
			name:     "text trimmed",
			line:     "2024-01-01 09:00   hello world  \n",
			wantOK:   true,
			wantTime: datetime.Date(2024, 1, 1, 9, 0),
			wantText: "hello world",
		},
		{
			name:     "stamp only",
			line:     "2024-01-01 09:00",
			wantOK:   true,
			wantTime: datetime.Date(2024, 1, 1, 9, 0),
			wantText: "",
		},
		{
			name:     "whitespace remainder",
			line:     "2024-01-01 09:00 \t \r",
			wantOK:   true,
			wantTime: datetime.Date(2024, 1, 1, 9, 0),
			wantText: "",
		},
		{
			name:   "no date",
			line:   "not a date line",
			wantOK: false,
		},
		{
			name:   "date not at start",
			line:   "at 2024-01-01 09:00 task",
			wantOK: false,
		},
		{
			name:   "empty",
			line:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := p.ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if e.Time() != tt.wantTime {
				t.Errorf("Time() = %v, want %v", e.Time(), tt.wantTime)
			}
			if e.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", e.Text(), tt.wantText)
			}
		})
	}
}

func TestParser_ParseLine_YearlessFormat(t *testing.T) {
	p := New(timefmt.MustLayout("%m-%d %H:%M"))

	tests := []struct {
		line     string
		wantTime datetime.Value
		wantText string
	}{
		{"02-28 10:00 ok", datetime.Date(1900, 2, 28, 10, 0), "ok"},
		{"02-29 10:00 leap", datetime.Date(1900, 2, 29, 10, 0), "leap"},
		{"04-31 10:00 thirty-first", datetime.Date(1900, 4, 31, 10, 0), "thirty-first"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e, ok := p.ParseLine(tt.line)
			if !ok {
				t.Fatalf("ParseLine(%q) rejected the line", tt.line)
			}
			if e.Time() != tt.wantTime {
				t.Errorf("Time() = %v, want %v", e.Time(), tt.wantTime)
			}
			if e.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", e.Text(), tt.wantText)
			}
		})
	}
}

func TestParser_Load(t *testing.T) {
	input := `2024-01-01 09:00 task A
2024-01-03 10:00 task C
2024-01-02 08:00 task B
not a date line
`
	p := New(timefmt.MustLayout(timefmt.DefaultFormat))
	store := event.NewStore()

	stats, err := p.Load(context.Background(), NewReaderSource(strings.NewReader(input), "test", DefaultMaxLineLength), store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if stats.LinesRead != 4 {
		t.Errorf("LinesRead = %d, want 4", stats.LinesRead)
	}
	if stats.EventsParsed != 3 {
		t.Errorf("EventsParsed = %d, want 3", stats.EventsParsed)
	}
	if store.Len() != 3 {
		t.Fatalf("store.Len() = %d, want 3", store.Len())
	}

	// Insertion order is input order, not chronological.
	want := []string{"task A", "task C", "task B"}
	for i, e := range store.Events() {
		if e.Text() != want[i] {
			t.Errorf("store[%d] = %q, want %q", i, e.Text(), want[i])
		}
	}
}

func TestParser_Load_Empty(t *testing.T) {
	p := New(timefmt.MustLayout(timefmt.DefaultFormat))
	store := event.NewStore()

	stats, err := p.Load(context.Background(), NewReaderSource(strings.NewReader(""), "test", 0), store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if stats.LinesRead != 0 || store.Len() != 0 {
		t.Errorf("stats = %+v, store.Len() = %d, want zero", stats, store.Len())
	}
}

func TestParser_Load_NoMatches(t *testing.T) {
	p := New(timefmt.MustLayout(timefmt.DefaultFormat))
	store := event.NewStore()

	input := "alpha\nbeta\ngamma\n"
	stats, err := p.Load(context.Background(), NewReaderSource(strings.NewReader(input), "test", 0), store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if stats.LinesRead != 3 || stats.EventsParsed != 0 || store.Len() != 0 {
		t.Errorf("stats = %+v, store.Len() = %d", stats, store.Len())
	}
}

func TestParser_Load_TruncatesLongLines(t *testing.T) {
	p := New(timefmt.MustLayout(timefmt.DefaultFormat))
	store := event.NewStore()

	input := "2024-01-01 09:00 " + strings.Repeat("y", 100) + "\n"
	_, err := p.Load(context.Background(), NewReaderSource(strings.NewReader(input), "test", 30), store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("store.Len() = %d, want 1", store.Len())
	}
	if got := store.Events()[0].Text(); got != strings.Repeat("y", 13) {
		t.Errorf("Text() = %q (len %d), want 13 y's", got, len(got))
	}
}
