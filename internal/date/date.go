package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the ISO-8601 layout used for text and JSON.
const Format = "2006-01-02"

// permissive read layout, accepts 2024-1-2
const readFormat = "2006-1-2"

// Date is a calendar date with day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so New(2024, 1, 32) is 2024-02-01.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Of returns the calendar date of t in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current local date.
func Today() Date { return Of(time.Now()) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Day() int           { return d.d }
func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }
func (d Date) After(x Date) bool  { return d.Time().After(x.Time()) }

// Add returns the date i days later (earlier when i is negative).
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// AddDate adds years, months and days like time.Time.AddDate.
func (d Date) AddDate(years, months, days int) Date {
	return New(d.y+years, d.m+time.Month(months), d.d+days)
}

// Sub returns the number of days from x to d.
func (d Date) Sub(x Date) int {
	return int(d.Time().Sub(x.Time()).Hours() / 24)
}

// DayNumber is the count of days since the Unix epoch.
func (d Date) DayNumber() int {
	return int(d.Time().Unix() / 86400)
}

func (d Date) String() string { return d.Time().Format(Format) }

// Parse reads a date in YYYY-MM-DD form. A full RFC 3339 timestamp is also
// accepted and truncated to its calendar day.
func Parse(s string) (Date, error) {
	if t, err := time.Parse(readFormat, s); err == nil {
		return Of(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Of(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q want format %q", s, Format)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
