package response

import (
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityResponse struct {
	CourtID     uuid.UUID   `json:"court_id"`
	Date        string      `json:"date"`
	Open        bool        `json:"open"`
	OpeningTime string      `json:"opening_time"`
	ClosingTime string      `json:"closing_time"`
	Booked      []TimeRange `json:"booked"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	booked := make([]TimeRange, len(v.Booked))
	for i, b := range v.Booked {
		booked[i] = TimeRange{StartTime: b.StartTime, EndTime: b.EndTime}
	}
	return &AvailabilityResponse{
		CourtID:     v.CourtID,
		Date:        v.Date,
		Open:        v.Open,
		OpeningTime: v.OpeningTime,
		ClosingTime: v.ClosingTime,
		Booked:      booked,
	}
}
