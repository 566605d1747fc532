package court

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidType    = errors.New("invalid court type")
	ErrInvalidWeekday = errors.New("invalid weekday")
)

type Type string

const (
	TypeIndoor  Type = "Indoor"
	TypeOutdoor Type = "Outdoor"
	TypePremium Type = "Premium"
)

func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (t Type) IsValid() bool {
	switch t {
	case TypeIndoor, TypeOutdoor, TypePremium:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	return string(t)
}

// ParseWeekday accepts English day names ("Monday") case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return 0, ErrInvalidWeekday
}

func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	seen := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	return days, nil
}

func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return names
}
