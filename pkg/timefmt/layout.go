// Package timefmt compiles strftime-style date formats. A Layout matches a
// date-time prefix of a line; a Renderer turns a datetime.Value back into text.
package timefmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccollicutt/sdep/pkg/datetime"
)

// DefaultFormat is used for both input and output when none is configured.
const DefaultFormat = "%Y-%m-%d %H:%M"

// Fields absent from an input layout take these values.
const (
	DefaultYear   = 1900
	DefaultMonth  = 1
	DefaultDay    = 1
	DefaultHour   = 0
	DefaultMinute = 0
)

var (
	// ErrEmptyFormat is returned for an empty format string.
	ErrEmptyFormat = errors.New("format is empty")

	// ErrUnsupportedDirective is returned for a conversion the matcher does not know.
	ErrUnsupportedDirective = errors.New("unsupported directive")
)

type itemKind int

const (
	itemLiteral itemKind = iota
	itemSpace
	itemField
)

type item struct {
	kind itemKind
	lit  byte
	verb byte
}

// composites expand to the layouts they abbreviate.
var composites = map[byte]string{
	'D': "%m/%d/%y",
	'F': "%Y-%m-%d",
	'R': "%H:%M",
	'T': "%H:%M:%S",
}

// fieldVerbs lists the conversions understood by the matcher.
const fieldVerbs = "YymdeHkIlMSpbhBaA"

// Layout is a compiled input format.
type Layout struct {
	pattern string
	items   []item
}

// NewLayout compiles an input format.
func NewLayout(pattern string) (*Layout, error) {
	if pattern == "" {
		return nil, ErrEmptyFormat
	}

	items, err := compile(pattern, 0)
	if err != nil {
		return nil, err
	}

	return &Layout{pattern: pattern, items: items}, nil
}

// MustLayout is like NewLayout but panics on error.
func MustLayout(pattern string) *Layout {
	l, err := NewLayout(pattern)
	if err != nil {
		panic(err)
	}
	return l
}

// Pattern returns the source format string.
func (l *Layout) Pattern() string {
	return l.pattern
}

func compile(pattern string, depth int) ([]item, error) {
	var items []item

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if isSpace(c) {
			if len(items) == 0 || items[len(items)-1].kind != itemSpace {
				items = append(items, item{kind: itemSpace})
			}
			continue
		}

		if c != '%' {
			items = append(items, item{kind: itemLiteral, lit: c})
			continue
		}

		i++
		if i >= len(pattern) {
			return nil, fmt.Errorf("%w: trailing %% in %q", ErrUnsupportedDirective, pattern)
		}
		verb := pattern[i]

		switch {
		case verb == '%':
			items = append(items, item{kind: itemLiteral, lit: '%'})
		case verb == 'n' || verb == 't':
			if len(items) == 0 || items[len(items)-1].kind != itemSpace {
				items = append(items, item{kind: itemSpace})
			}
		case composites[verb] != "" && depth == 0:
			sub, err := compile(composites[verb], depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, sub...)
		case strings.IndexByte(fieldVerbs, verb) >= 0:
			items = append(items, item{kind: itemField, verb: verb})
		default:
			return nil, fmt.Errorf("%w %%%c in %q", ErrUnsupportedDirective, verb, pattern)
		}
	}

	return items, nil
}

// fields accumulates matched conversions before they become a Value.
type fields struct {
	v      datetime.Value
	hour12 bool
	pm     bool
}

// Match parses a date-time prefix of s. It returns the parsed value and the
// unconsumed remainder of s. ok is false when the prefix does not fit the
// layout. Each field is range-checked on its own (the day against 1-31), so
// "02-29" or "04-31" match even where the year has no such day.
func (l *Layout) Match(s string) (v datetime.Value, rest string, ok bool) {
	f := fields{v: datetime.Date(DefaultYear, DefaultMonth, DefaultDay, DefaultHour, DefaultMinute)}
	pos := 0

	for _, it := range l.items {
		switch it.kind {
		case itemSpace:
			for pos < len(s) && isSpace(s[pos]) {
				pos++
			}
		case itemLiteral:
			if pos >= len(s) || s[pos] != it.lit {
				return datetime.Value{}, "", false
			}
			pos++
		case itemField:
			n, ok := f.match(it.verb, s[pos:])
			if !ok {
				return datetime.Value{}, "", false
			}
			pos += n
		}
	}

	if f.hour12 {
		f.v.Hour %= 12
		if f.pm {
			f.v.Hour += 12
		}
	}

	return f.v, s[pos:], true
}

// match consumes one conversion from the front of s and returns the number
// of bytes used.
func (f *fields) match(verb byte, s string) (int, bool) {
	switch verb {
	case 'Y':
		return f.number(s, 4, 0, 9999, &f.v.Year)
	case 'y':
		var yy int
		n, ok := f.number(s, 2, 0, 99, &yy)
		if ok {
			if yy < 69 {
				f.v.Year = 2000 + yy
			} else {
				f.v.Year = 1900 + yy
			}
		}
		return n, ok
	case 'm':
		return f.number(s, 2, 1, 12, &f.v.Month)
	case 'd', 'e':
		return f.number(s, 2, 1, 31, &f.v.Day)
	case 'H', 'k':
		f.hour12 = false
		return f.number(s, 2, 0, 23, &f.v.Hour)
	case 'I', 'l':
		f.hour12 = true
		return f.number(s, 2, 1, 12, &f.v.Hour)
	case 'M':
		return f.number(s, 2, 0, 59, &f.v.Minute)
	case 'S':
		var sec int
		return f.number(s, 2, 0, 61, &sec)
	case 'p':
		return f.meridiem(s)
	case 'b', 'h', 'B':
		idx, n := matchName(s, monthNames)
		if n == 0 {
			return 0, false
		}
		f.v.Month = idx + 1
		return n, true
	case 'a', 'A':
		_, n := matchName(s, dayNames)
		return n, n > 0
	}
	return 0, false
}

// number reads up to width digits after optional blanks and stores the
// result in dst when it lies in [lo, hi].
func (f *fields) number(s string, width, lo, hi int, dst *int) (int, bool) {
	pos := 0
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}

	start := pos
	val := 0
	for pos < len(s) && pos-start < width && s[pos] >= '0' && s[pos] <= '9' {
		val = val*10 + int(s[pos]-'0')
		pos++
	}

	if pos == start || val < lo || val > hi {
		return 0, false
	}

	*dst = val
	return pos, true
}

func (f *fields) meridiem(s string) (int, bool) {
	if len(s) < 2 {
		return 0, false
	}
	switch strings.ToUpper(s[:2]) {
	case "AM":
		f.pm = false
	case "PM":
		f.pm = true
	default:
		return 0, false
	}
	return 2, true
}

type name struct {
	full  string
	short string
}

var monthNames = []name{
	{"January", "Jan"}, {"February", "Feb"}, {"March", "Mar"}, {"April", "Apr"},
	{"May", "May"}, {"June", "Jun"}, {"July", "Jul"}, {"August", "Aug"},
	{"September", "Sep"}, {"October", "Oct"}, {"November", "Nov"}, {"December", "Dec"},
}

var dayNames = []name{
	{"Sunday", "Sun"}, {"Monday", "Mon"}, {"Tuesday", "Tue"}, {"Wednesday", "Wed"},
	{"Thursday", "Thu"}, {"Friday", "Fri"}, {"Saturday", "Sat"},
}

// matchName finds a full or abbreviated English name at the front of s,
// ignoring case. Full names are preferred.
func matchName(s string, names []name) (index, length int) {
	for i, n := range names {
		if hasPrefixFold(s, n.full) {
			return i, len(n.full)
		}
	}
	for i, n := range names {
		if hasPrefixFold(s, n.short) {
			return i, len(n.short)
		}
	}
	return -1, 0
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
