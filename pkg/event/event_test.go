package event

import (
	"testing"

	"github.com/ccollicutt/sdep/pkg/datetime"
)

func TestNew_TrimsText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"surrounding spaces and newline", "  hello world  \n", "hello world"},
		{"tabs and carriage return", "\thello\r\n", "hello"},
		{"form feed and vertical tab", "\f\vhello\v\f", "hello"},
		{"inner whitespace kept", " a  b\tc ", "a  b\tc"},
		{"all whitespace", " \t\r\n\f\v", ""},
		{"empty", "", ""},
		{"non-breaking space kept", "\u00a0x\u00a0", "\u00a0x\u00a0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(datetime.Date(2024, 1, 1, 0, 0), tt.text)
			if e.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", e.Text(), tt.want)
			}
		})
	}
}

func TestStore_AppendKeepsOrder(t *testing.T) {
	s := NewStore()
	if s.Len() != 0 {
		t.Fatalf("new store Len() = %d, want 0", s.Len())
	}

	s.Append(New(datetime.Date(2024, 1, 3, 0, 0), "c"))
	s.Append(New(datetime.Date(2024, 1, 1, 0, 0), "a"))
	s.Append(New(datetime.Date(2024, 1, 2, 0, 0), "b"))

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	var got []string
	for e := range s.All() {
		got = append(got, e.Text())
	}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStore_EventsIsCopy(t *testing.T) {
	s := NewStore()
	s.Append(New(datetime.Date(2024, 1, 1, 0, 0), "a"))

	events := s.Events()
	events[0] = New(datetime.Date(1999, 1, 1, 0, 0), "changed")

	if s.Events()[0].Text() != "a" {
		t.Error("modifying Events() result changed the store")
	}
}
