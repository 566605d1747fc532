//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/reservation"
	"court-booking/internal/domain/slot"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	CourtID       uuid.UUID
	UserID        uuid.UUID
	Date          string
	StartTime     string
	EndTime       string
	TotalPrice    int64
	Status        string
	PaymentStatus string
	Notes         string
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:            uuid.New(),
		CourtID:       uuid.New(),
		UserID:        uuid.New(),
		Date:          "2026-10-18",
		StartTime:     "10:00",
		EndTime:       "11:00",
		TotalPrice:    500,
		Status:        "pending",
		PaymentStatus: "pending",
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithCourt(id uuid.UUID) *ReservationBuilder {
	b.CourtID = id
	return b
}

func (b *ReservationBuilder) WithUser(id uuid.UUID) *ReservationBuilder {
	b.UserID = id
	return b
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.Date = date
	return b
}

func (b *ReservationBuilder) WithTimes(start, end string) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithStatus(status string) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	date, err := slot.ParseDate(b.Date)
	if err != nil {
		return nil, err
	}
	interval, err := slot.NewInterval(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(b.Status)
	if err != nil {
		return nil, err
	}
	payment, err := reservation.ParsePaymentStatus(b.PaymentStatus)
	if err != nil {
		return nil, err
	}
	price, err := reservation.NewMoney(b.TotalPrice)
	if err != nil {
		return nil, err
	}
	note, err := reservation.NewNote(b.Notes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return reservation.ReconstructReservation(
		b.ID, b.CourtID, b.UserID, date, interval, price, status, payment, note, now, now,
	), nil
}

func (b *ReservationBuilder) MustBuildDomain() *reservation.Reservation {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}

func (b *ReservationBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CourtID:   b.CourtID.String(),
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Notes:     b.Notes,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	now := time.Now()
	return &queries.ReservationView{
		ID:            b.ID,
		CourtID:       b.CourtID,
		CourtName:     "Center Court",
		UserID:        b.UserID,
		UserName:      "Test User",
		UserEmail:     "test@example.com",
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalPrice:    b.TotalPrice,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Notes:         b.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
