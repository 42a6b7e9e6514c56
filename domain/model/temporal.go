package model

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used to render temporal values as SQL text.
const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05.999999999"
	dateTimeLayout = "2006-01-02 15:04:05.999999999"
)

// Date is a calendar date without time of day (SQL DATE).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date y-m-d, normalized like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the date part of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight of d in UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// TimeOfDay is a wall-clock time without date (SQL TIME).
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// NewTimeOfDay returns the given time of day.
func NewTimeOfDay(hour, minute, second, nanosecond int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second, Nanosecond: nanosecond}
}

// TimeOfDayOf returns the clock part of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Minute: m, Second: s, Nanosecond: t.Nanosecond()}
}

// On combines tod with the date d in UTC.
func (tod TimeOfDay) On(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, tod.Second, tod.Nanosecond, time.UTC)
}

// String returns HH:MM:SS with fractional seconds when present.
func (tod TimeOfDay) String() string {
	return tod.On(Date{Year: 1, Month: time.January, Day: 1}).Format(timeLayout)
}

// formatDateTime renders t in UTC as YYYY-MM-DD HH:MM:SS[.fraction].
func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// WString is a wide character string (NCHAR, NVARCHAR, NTEXT).
type WString []rune

// NewWString converts s to a WString.
func NewWString(s string) WString {
	return WString(s)
}

// String converts w to UTF-8.
func (w WString) String() string {
	return string(w)
}

// truncateRunes keeps at most limit runes of s. A zero limit keeps everything.
func truncateRunes(s string, limit uint32) string {
	if limit == 0 {
		return s
	}
	n := uint32(0)
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// ParseDate parses s with the date layouts understood by the datetime pattern table.
func ParseDate(s string) (Date, error) {
	t, tag, ok := parseTemporal(s)
	if !ok || tag == TypeTime {
		return Date{}, fmt.Errorf("%w: %q is not a date", ErrTypeMismatch, s)
	}
	return DateOf(t), nil
}

// ParseTimeOfDay parses s as a time of day. A full datetime yields its clock part.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, tag, ok := parseTemporal(s)
	if !ok || tag == TypeDate {
		return TimeOfDay{}, fmt.Errorf("%w: %q is not a time", ErrTypeMismatch, s)
	}
	return TimeOfDayOf(t), nil
}

// ParseDateTime parses s as a datetime. A bare date yields midnight.
func ParseDateTime(s string) (time.Time, error) {
	t, tag, ok := parseTemporal(strings.TrimSpace(s))
	if !ok || tag == TypeTime {
		return time.Time{}, fmt.Errorf("%w: %q is not a datetime", ErrTypeMismatch, s)
	}
	return t, nil
}
