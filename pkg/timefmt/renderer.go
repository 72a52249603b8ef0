package timefmt

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/ccollicutt/sdep/pkg/datetime"
)

// Renderer is a compiled output format.
type Renderer struct {
	sf *strftime.Strftime
}

// NewRenderer compiles an output format.
func NewRenderer(pattern string) (*Renderer, error) {
	if pattern == "" {
		return nil, ErrEmptyFormat
	}

	sf, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling output format %q: %w", pattern, err)
	}

	return &Renderer{sf: sf}, nil
}

// MustRenderer is like NewRenderer but panics on error.
func MustRenderer(pattern string) *Renderer {
	r, err := NewRenderer(pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the source format string.
func (r *Renderer) Pattern() string {
	return r.sf.Pattern()
}

// Render formats v. Seconds always render as zero and the zone as UTC.
// A value that is not a real calendar date, such as 02-29 in a year without
// one, prints its own month and day instead of the normalized date.
func (r *Renderer) Render(v datetime.Value) string {
	if v.Valid() {
		return r.sf.FormatString(v.Time())
	}

	out, err := strftime.Format(r.sf.Pattern(), v.Time(), fieldSpecifications(v)...)
	if err != nil {
		return r.sf.FormatString(v.Time())
	}
	return out
}

// fieldSpecifications overrides the conversions that print the month or the
// day of the month with the literal fields of v.
func fieldSpecifications(v datetime.Value) []strftime.Option {
	month := time.Month(v.Month).String()
	abbr := month[:3]
	day := fmt.Sprintf("%02d", v.Day)
	daySpace := fmt.Sprintf("%2d", v.Day)
	mon := fmt.Sprintf("%02d", v.Month)
	mdy := fmt.Sprintf("%s/%s/%02d", mon, day, v.Year%100)

	ctime := strftime.AppendFunc(func(b []byte, t time.Time) []byte {
		b = append(b, t.Format("Mon")...)
		b = append(b, ' ')
		b = append(b, abbr...)
		b = append(b, ' ')
		b = append(b, daySpace...)
		return append(b, t.Format(" 15:04:05 2006")...)
	})

	return []strftime.Option{
		strftime.WithSpecification('d', strftime.Verbatim(day)),
		strftime.WithSpecification('e', strftime.Verbatim(daySpace)),
		strftime.WithSpecification('m', strftime.Verbatim(mon)),
		strftime.WithSpecification('b', strftime.Verbatim(abbr)),
		strftime.WithSpecification('h', strftime.Verbatim(abbr)),
		strftime.WithSpecification('B', strftime.Verbatim(month)),
		strftime.WithSpecification('F', strftime.Verbatim(fmt.Sprintf("%04d-%s-%s", v.Year, mon, day))),
		strftime.WithSpecification('D', strftime.Verbatim(mdy)),
		strftime.WithSpecification('x', strftime.Verbatim(mdy)),
		strftime.WithSpecification('v', strftime.Verbatim(fmt.Sprintf("%s-%s-%04d", daySpace, abbr, v.Year))),
		strftime.WithSpecification('c', ctime),
	}
}
