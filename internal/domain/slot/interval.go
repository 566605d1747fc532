package slot

import "time"

// Interval is a half-open time-of-day range [start, end) within a single day.
type Interval struct {
	start TimeOfDay
	end   TimeOfDay
}

func NewInterval(start, end string) (Interval, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Interval{}, err
	}
	return IntervalOf(s, e)
}

func IntervalOf(start, end TimeOfDay) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, ErrInvalidTimeRange
	}
	return Interval{start: start, end: end}, nil
}

func MustInterval(start, end string) Interval {
	i, err := NewInterval(start, end)
	if err != nil {
		panic("slot: invalid interval " + start + "-" + end)
	}
	return i
}

// Validate reports whether start and end form a bookable interval.
func Validate(start, end string) error {
	_, err := NewInterval(start, end)
	return err
}

// Overlaps is symmetric; intervals that only touch at an endpoint do not overlap.
func Overlaps(a, b Interval) bool {
	return a.start.minutes < b.end.minutes && b.start.minutes < a.end.minutes
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i, other)
}

func (i Interval) Start() TimeOfDay { return i.start }
func (i Interval) End() TimeOfDay   { return i.end }

func (i Interval) Minutes() int {
	return i.end.minutes - i.start.minutes
}

func (i Interval) Duration() time.Duration {
	return time.Duration(i.Minutes()) * time.Minute
}

// Within reports whether the interval lies inside [open, close].
func (i Interval) Within(open, close TimeOfDay) bool {
	return i.start.minutes >= open.minutes && i.end.minutes <= close.minutes
}

func (i Interval) String() string {
	return i.start.String() + "-" + i.end.String()
}
