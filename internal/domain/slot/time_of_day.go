package slot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
)

const MinutesPerDay = 24 * 60

var timeOfDayPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay is a wall-clock time on an unspecified day, stored as minutes since midnight.
type TimeOfDay struct {
	minutes int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !timeOfDayPattern.MatchString(s) {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}

	hh, mm, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}

	return TimeOfDay{minutes: h*60 + m}, nil
}

func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	return TimeOfDay{minutes: minutes}, nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(fmt.Sprintf("slot: invalid time of day %q", s))
	}
	return t
}

func (t TimeOfDay) Minutes() int { return t.minutes }
func (t TimeOfDay) Hour() int    { return t.minutes / 60 }
func (t TimeOfDay) Minute() int  { return t.minutes % 60 }

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

func (t TimeOfDay) After(other TimeOfDay) bool {
	return t.minutes > other.minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
