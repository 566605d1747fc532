package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var (
	ErrInvalidDate = errors.New("invalid or null pgtype.Date")
	ErrInvalidTime = errors.New("invalid or null pgtype.Time")
)

const microsPerMinute = int64(time.Minute / time.Microsecond)

func DateToPgtype(d slot.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func DateFromPgtype(pd pgtype.Date) (slot.Date, error) {
	if !pd.Valid || pd.InfinityModifier != pgtype.Finite {
		return slot.Date{}, ErrInvalidDate
	}
	return slot.DateOf(pd.Time), nil
}

func TimeOfDayToPgtype(t slot.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t.Minutes()) * microsPerMinute, Valid: true}
}

// TimeOfDayFromPgtype drops seconds; stored values are always whole minutes.
func TimeOfDayFromPgtype(pt pgtype.Time) (slot.TimeOfDay, error) {
	if !pt.Valid {
		return slot.TimeOfDay{}, ErrInvalidTime
	}
	t, err := slot.TimeOfDayFromMinutes(int(pt.Microseconds / microsPerMinute))
	if err != nil {
		return slot.TimeOfDay{}, ErrInvalidTime
	}
	return t, nil
}

func IntervalFromPgtype(start, end pgtype.Time) (slot.Interval, error) {
	s, err := TimeOfDayFromPgtype(start)
	if err != nil {
		return slot.Interval{}, err
	}
	e, err := TimeOfDayFromPgtype(end)
	if err != nil {
		return slot.Interval{}, err
	}
	return slot.IntervalOf(s, e)
}

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrToPgtype(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func TimePtrFromPgtype(pt pgtype.Timestamptz) *time.Time {
	if !pt.Valid {
		return nil
	}
	return &pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{Valid: false}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// WeekdaysToInt16 encodes weekdays as 0 (Sunday) through 6 for a smallint[] column.
func WeekdaysToInt16(days []time.Weekday) []int16 {
	out := make([]int16, len(days))
	for i, d := range days {
		out[i] = int16(d)
	}
	return out
}

func WeekdaysFromInt16(values []int16) []time.Weekday {
	out := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		if v >= 0 && v <= 6 {
			out = append(out, time.Weekday(v))
		}
	}
	return out
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
