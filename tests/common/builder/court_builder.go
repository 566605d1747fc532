//go:build unit || e2e

package builder

import (
	"time"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"
	reqdto "court-booking/internal/handler/dto/request"
	"court-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CourtBuilder struct {
	ID            uuid.UUID
	Name          string
	Type          string
	PricePerHour  int64
	Description   string
	Facilities    []string
	OpeningTime   string
	ClosingTime   string
	AvailableDays []string
	Image         string
	IsActive      bool
}

func NewCourtBuilder() *CourtBuilder {
	return &CourtBuilder{
		ID:            uuid.New(),
		Name:          "Center Court",
		Type:          "Indoor",
		PricePerHour:  500,
		Description:   "Five-a-side futsal court",
		Facilities:    []string{"lights", "showers"},
		OpeningTime:   "06:00",
		ClosingTime:   "22:00",
		AvailableDays: []string{},
		IsActive:      true,
	}
}

func (b *CourtBuilder) With(mutate func(*CourtBuilder)) *CourtBuilder {
	mutate(b)
	return b
}

func (b *CourtBuilder) WithID(id uuid.UUID) *CourtBuilder {
	b.ID = id
	return b
}

func (b *CourtBuilder) WithName(name string) *CourtBuilder {
	b.Name = name
	return b
}

func (b *CourtBuilder) WithPrice(pricePerHour int64) *CourtBuilder {
	b.PricePerHour = pricePerHour
	return b
}

func (b *CourtBuilder) WithHours(opening, closing string) *CourtBuilder {
	b.OpeningTime = opening
	b.ClosingTime = closing
	return b
}

func (b *CourtBuilder) WithDays(days ...string) *CourtBuilder {
	b.AvailableDays = days
	return b
}

func (b *CourtBuilder) AsInactive() *CourtBuilder {
	b.IsActive = false
	return b
}

// BuildDomain goes through NewCourt so validation runs, then applies the builder ID.
func (b *CourtBuilder) BuildDomain() (*court.Court, error) {
	courtType, err := court.ParseType(b.Type)
	if err != nil {
		return nil, err
	}
	opening, err := slot.ParseTimeOfDay(b.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := slot.ParseTimeOfDay(b.ClosingTime)
	if err != nil {
		return nil, err
	}
	days, err := court.ParseWeekdays(b.AvailableDays)
	if err != nil {
		return nil, err
	}

	c, err := court.NewCourt(court.NewCourtParams{
		Name:          b.Name,
		Type:          courtType,
		PricePerHour:  b.PricePerHour,
		Description:   b.Description,
		Facilities:    b.Facilities,
		OpeningTime:   opening,
		ClosingTime:   closing,
		AvailableDays: days,
		Image:         b.Image,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return court.ReconstructCourt(
		b.ID, c.Name(), c.Type(), c.PricePerHour(), c.Description(), c.Facilities(),
		c.OpeningTime(), c.ClosingTime(), c.AvailableDays(), c.Image(), b.IsActive, now, now,
	), nil
}

func (b *CourtBuilder) MustBuildDomain() *court.Court {
	c, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return c
}

func (b *CourtBuilder) BuildDTO() reqdto.CreateCourtRequest {
	return reqdto.CreateCourtRequest{
		Name:          b.Name,
		Type:          b.Type,
		PricePerHour:  b.PricePerHour,
		Description:   b.Description,
		Facilities:    b.Facilities,
		OpeningTime:   b.OpeningTime,
		ClosingTime:   b.ClosingTime,
		AvailableDays: b.AvailableDays,
		Image:         b.Image,
	}
}

func (b *CourtBuilder) BuildView() *queries.CourtView {
	now := time.Now()
	return &queries.CourtView{
		ID:            b.ID,
		Name:          b.Name,
		Type:          b.Type,
		PricePerHour:  b.PricePerHour,
		Description:   b.Description,
		Facilities:    b.Facilities,
		OpeningTime:   b.OpeningTime,
		ClosingTime:   b.ClosingTime,
		AvailableDays: b.AvailableDays,
		Image:         b.Image,
		IsActive:      b.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
