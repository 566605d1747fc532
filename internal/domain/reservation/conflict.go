package reservation

import (
	"court-booking/internal/domain/slot"

	"github.com/google/uuid"
)

// Booked is the part of a reservation the conflict check needs.
type Booked struct {
	ID       uuid.UUID
	CourtID  uuid.UUID
	Date     slot.Date
	Interval slot.Interval
	Status   Status
}

func (r *Reservation) Booked() Booked {
	return Booked{
		ID:       r.id,
		CourtID:  r.courtID,
		Date:     r.date,
		Interval: r.interval,
		Status:   r.status,
	}
}

// FindConflict returns the first non-cancelled entry for the same court and date
// whose interval overlaps the candidate.
func FindConflict(courtID uuid.UUID, date slot.Date, interval slot.Interval, existing []Booked) (Booked, bool) {
	for _, b := range existing {
		if b.Status == StatusCancelled || b.CourtID != courtID || !b.Date.Equal(date) {
			continue
		}
		if slot.Overlaps(interval, b.Interval) {
			return b, true
		}
	}
	return Booked{}, false
}

func HasConflict(courtID uuid.UUID, date slot.Date, interval slot.Interval, existing []Booked) bool {
	_, found := FindConflict(courtID, date, interval, existing)
	return found
}
