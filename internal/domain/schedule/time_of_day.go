package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time with second precision, stored as seconds since midnight.
type TimeOfDay int

const (
	Midnight  TimeOfDay = 0
	EndOfDay  TimeOfDay = 24 * 60 * 60
	secPerMin           = 60
)

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". "24:00" is accepted as end of day.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" || s == "24:00:00" {
		return EndOfDay, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*secPerMin + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TimeOfDayFromDuration(d time.Duration) TimeOfDay {
	return TimeOfDay(d / time.Second)
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Second
}

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Second)
}

func (t TimeOfDay) Valid() bool {
	return t >= Midnight && t <= EndOfDay
}

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/secPerMin, s%secPerMin)
}

// On returns the instant on the calendar day of date at this wall-clock time.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(t.Duration())
}

// DayOfWeek follows time.Weekday numbering: 0 is Sunday.
type DayOfWeek int

var ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")

func NewDayOfWeek(v int) (DayOfWeek, error) {
	if v < 0 || v > 6 {
		return 0, ErrInvalidDayOfWeek
	}
	return DayOfWeek(v), nil
}

func DayOfWeekOf(date time.Time) DayOfWeek {
	return DayOfWeek(date.Weekday())
}

func (d DayOfWeek) Int() int { return int(d) }

func (d DayOfWeek) String() string {
	return time.Weekday(d).String()
}
