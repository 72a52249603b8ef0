// Package datetime provides the minute-granularity calendar value used to
// order and filter events.
package datetime

import (
	"cmp"
	"fmt"
	"math"
	"time"
)

// Value is a calendar timestamp truncated to the minute.
// It carries no timezone and no seconds. Values are compared field by
// field, so two stamps for the same instant in different zones may differ.
type Value struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int // 0-23
	Minute int // 0-59
}

var (
	// Min compares below every representable calendar value.
	Min = Value{Year: math.MinInt, Month: math.MinInt, Day: math.MinInt, Hour: math.MinInt, Minute: math.MinInt}

	// Max compares above every representable calendar value.
	Max = Value{Year: math.MaxInt, Month: math.MaxInt, Day: math.MaxInt, Hour: math.MaxInt, Minute: math.MaxInt}
)

// Date returns the Value for the given fields. Fields are not normalized.
func Date(year, month, day, hour, minute int) Value {
	return Value{Year: year, Month: month, Day: day, Hour: hour, Minute: minute}
}

// FromTime returns the wall-clock fields of t, dropping seconds and zone.
func FromTime(t time.Time) Value {
	return Value{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Now returns the current local time truncated to the minute.
func Now() Value {
	return FromTime(time.Now())
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b. Fields are compared in order year, month, day, hour, minute.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Day, b.Day); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Hour, b.Hour); c != 0 {
		return c
	}
	return cmp.Compare(a.Minute, b.Minute)
}

// After reports whether v sorts strictly after other.
func (v Value) After(other Value) bool {
	return Compare(v, other) > 0
}

// IsUnbounded reports whether v is one of the Min/Max sentinels.
func (v Value) IsUnbounded() bool {
	return v == Min || v == Max
}

// Valid reports whether v names a real calendar date and time of day.
// Parsed values may fail it: a day is only range-checked against 1-31.
func (v Value) Valid() bool {
	if v.Month < 1 || v.Month > 12 || v.Day < 1 || v.Hour < 0 || v.Hour > 23 || v.Minute < 0 || v.Minute > 59 {
		return false
	}
	return v.Day <= DaysIn(v.Year, v.Month)
}

// Time converts v into a UTC time.Time for rendering.
// Out-of-range fields are normalized by time.Date.
func (v Value) Time() time.Time {
	return time.Date(v.Year, time.Month(v.Month), v.Day, v.Hour, v.Minute, 0, 0, time.UTC)
}

// String renders v as "YYYY-MM-DD HH:MM". The sentinels render as -inf and +inf.
func (v Value) String() string {
	switch v {
	case Min:
		return "-inf"
	case Max:
		return "+inf"
	}
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", v.Year, v.Month, v.Day, v.Hour, v.Minute)
}

// DaysIn returns the number of days in the given month of the proleptic
// Gregorian calendar.
func DaysIn(year, month int) int {
	switch month {
	case 2:
		if isLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
