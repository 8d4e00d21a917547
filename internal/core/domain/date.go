package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedInput      = errors.New("malformed date input")
	ErrInvalidCalendarDate = errors.New("invalid calendar date")
)

const (
	DateKindMalformed       = "malformed_input"
	DateKindInvalidCalendar = "invalid_calendar_date"

	isoLayout = "2006-01-02"
)

// Each separator is matched independently, so "05-07.2024" is accepted.
var displayDateRegex = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)
var isoDateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// DateParseError reports the text that failed to parse and why.
// Err is always ErrMalformedInput or ErrInvalidCalendarDate.
type DateParseError struct {
	Input string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse date %q: %v", e.Input, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// DateErrorKind returns the stable machine name of a date parse failure,
// or "" when err is not one.
func DateErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedInput):
		return DateKindMalformed
	case errors.Is(err, ErrInvalidCalendarDate):
		return DateKindInvalidCalendar
	default:
		return ""
	}
}

// Date is a calendar day with no time of day and no zone.
// The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates the components against the Gregorian calendar.
func NewDate(year int, month time.Month, day int) (Date, error) {
	return buildDate(year, int(month), day, fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar day in loc (time.Local when nil).
func Today(loc *time.Location) Date {
	return TodayAt(time.Now(), loc)
}

// TodayAt returns the calendar day that instant t falls on in loc.
// It converts before truncating, so a late-evening local instant never
// lands on the next UTC day.
func TodayAt(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(t.In(loc))
}

// ParseDisplay parses dd/mm/yyyy text. Day and month may omit the leading
// zero and each separator may be '/', '-' or '.'.
func ParseDisplay(text string) (Date, error) {
	trimmed := strings.TrimSpace(text)
	m := displayDateRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Date{}, &DateParseError{Input: text, Err: ErrMalformedInput}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return buildDate(year, month, day, text)
}

// ParseISO parses canonical YYYY-MM-DD text with the same calendar checks
// as ParseDisplay.
func ParseISO(text string) (Date, error) {
	trimmed := strings.TrimSpace(text)
	m := isoDateRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Date{}, &DateParseError{Input: text, Err: ErrMalformedInput}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return buildDate(year, month, day, text)
}

// ParseAny accepts either the canonical or the display form.
func ParseAny(text string) (Date, error) {
	if isoDateRegex.MatchString(strings.TrimSpace(text)) {
		return ParseISO(text)
	}
	return ParseDisplay(text)
}

// buildDate constructs the day, renders it back to canonical text and
// re-derives the components from that text. time.Date normalizes out of
// range values (31 Feb becomes 3 Mar), so any mismatch means the input
// named a day that does not exist.
func buildDate(year, month, day int, input string) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, &DateParseError{Input: input, Err: ErrInvalidCalendarDate}
	}

	rendered := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(isoLayout)
	back, err := time.Parse(isoLayout, rendered)
	if err != nil || back.Year() != year || int(back.Month()) != month || back.Day() != day {
		return Date{}, &DateParseError{Input: input, Err: ErrInvalidCalendarDate}
	}

	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// String renders the canonical YYYY-MM-DD form.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display renders the zero-padded dd/mm/yyyy form.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return d.In(time.UTC)
}

// In returns local midnight of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil counts calendar days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int((other.Time().Unix() - d.Time().Unix()) / 86400)
}

func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return &DateParseError{Input: string(data), Err: ErrMalformedInput}
	}
	if strings.TrimSpace(text) == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseAny(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan reads a SQL DATE. Drivers hand it over either as time.Time or as text.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("domain: cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(text string) error {
	if len(text) > len(isoLayout) {
		text = text[:len(isoLayout)]
	}
	parsed, err := ParseISO(text)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
