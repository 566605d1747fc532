package request

import "court-booking/internal/usecase/commands"

type CreateCourtRequest struct {
	Name          string   `json:"name" binding:"required,max=255"`
	Type          string   `json:"type" binding:"required,courttype"`
	PricePerHour  int64    `json:"price_per_hour" binding:"required,gt=0,lte=100000000"`
	Description   string   `json:"description" binding:"max=2000"`
	Facilities    []string `json:"facilities"`
	OpeningTime   string   `json:"opening_time" binding:"required,hhmm"`
	ClosingTime   string   `json:"closing_time" binding:"required,hhmm"`
	AvailableDays []string `json:"available_days" binding:"omitempty,dive,weekday"`
	Image         string   `json:"image"`
}

func (r CreateCourtRequest) ToInput() commands.CreateCourtInput {
	return commands.CreateCourtInput{
		Name:          r.Name,
		Type:          r.Type,
		PricePerHour:  r.PricePerHour,
		Description:   r.Description,
		Facilities:    r.Facilities,
		OpeningTime:   r.OpeningTime,
		ClosingTime:   r.ClosingTime,
		AvailableDays: r.AvailableDays,
		Image:         r.Image,
	}
}

// UpdateCourtRequest is a partial update; absent fields keep their value.
type UpdateCourtRequest struct {
	Name          *string   `json:"name" binding:"omitempty,max=255"`
	Type          *string   `json:"type" binding:"omitempty,courttype"`
	PricePerHour  *int64    `json:"price_per_hour" binding:"omitempty,gt=0,lte=100000000"`
	Description   *string   `json:"description" binding:"omitempty,max=2000"`
	Facilities    *[]string `json:"facilities"`
	OpeningTime   *string   `json:"opening_time" binding:"omitempty,hhmm"`
	ClosingTime   *string   `json:"closing_time" binding:"omitempty,hhmm"`
	AvailableDays *[]string `json:"available_days" binding:"omitempty,dive,weekday"`
	Image         *string   `json:"image"`
	IsActive      *bool     `json:"is_active"`
}

func (r UpdateCourtRequest) ToInput() commands.UpdateCourtInput {
	return commands.UpdateCourtInput{
		Name:          r.Name,
		Type:          r.Type,
		PricePerHour:  r.PricePerHour,
		Description:   r.Description,
		Facilities:    r.Facilities,
		OpeningTime:   r.OpeningTime,
		ClosingTime:   r.ClosingTime,
		AvailableDays: r.AvailableDays,
		Image:         r.Image,
		IsActive:      r.IsActive,
	}
}
