package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Date - календарная дата без времени (YYYY-MM-DD)
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf возвращает календарную дату момента времени в его собственной зоне
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// WeekdayKey - ключ дня недели в карте часов работы ("monday", ...)
func (d Date) WeekdayKey() string {
	return strings.ToLower(d.Weekday().String())
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime - время суток в формате HH:MM (24h)
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClock(s string) (ClockTime, error) {
	// time.Parse принимает "9:00" для 15:04, поэтому длина проверяется отдельно
	if len(s) != len(ClockLayout) {
		return ClockTime{}, fmt.Errorf("parse clock %q: expected HH:MM", s)
	}
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes - минуты от полуночи
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func ClockFromMinutes(m int) ClockTime {
	return ClockTime{Hour: m / 60, Minute: m % 60}
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
