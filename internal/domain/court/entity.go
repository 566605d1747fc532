package court

import (
	"errors"
	"slices"
	"strings"
	"time"

	"court-booking/internal/domain/slot"
	"court-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

var (
	ErrEmptyCourtName        = errors.New("court name cannot be empty")
	ErrCourtNameTooLong      = errors.New("court name is too long (max 255 characters)")
	ErrInvalidPrice          = errors.New("price per hour must be between 1 and 100000000")
	ErrInvalidOperatingHours = errors.New("opening time must be before closing time")
)

const (
	MaxCourtNameLength = 255
	// MaxPricePerHour keeps rate*minutes well inside int64.
	MaxPricePerHour = 100_000_000
	DefaultImage    = "/images/default-court.jpg"
)

// Court is a bookable playing surface. PricePerHour is in minor currency units.
type Court struct {
	id            uuid.UUID
	name          string
	courtType     Type
	pricePerHour  int64
	description   string
	facilities    []string
	openingTime   slot.TimeOfDay
	closingTime   slot.TimeOfDay
	availableDays []time.Weekday
	image         string
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

type NewCourtParams struct {
	Name          string
	Type          Type
	PricePerHour  int64
	Description   string
	Facilities    []string
	OpeningTime   slot.TimeOfDay
	ClosingTime   slot.TimeOfDay
	AvailableDays []time.Weekday
	Image         string
}

// UpdateParams carries a partial update; nil fields keep their current value.
type UpdateParams struct {
	Name          *string
	Type          *Type
	PricePerHour  *int64
	Description   *string
	Facilities    *[]string
	OpeningTime   *slot.TimeOfDay
	ClosingTime   *slot.TimeOfDay
	AvailableDays *[]time.Weekday
	Image         *string
	IsActive      *bool
}

func NewCourt(p NewCourtParams) (*Court, error) {
	c := &Court{
		id:            uuid.New(),
		name:          strings.TrimSpace(p.Name),
		courtType:     p.Type,
		pricePerHour:  p.PricePerHour,
		description:   p.Description,
		facilities:    nonNil(p.Facilities),
		openingTime:   p.OpeningTime,
		closingTime:   p.ClosingTime,
		availableDays: nonNil(p.AvailableDays),
		image:         p.Image,
		isActive:      true,
	}
	if c.image == "" {
		c.image = DefaultImage
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func ReconstructCourt(
	id uuid.UUID,
	name string,
	courtType Type,
	pricePerHour int64,
	description string,
	facilities []string,
	openingTime, closingTime slot.TimeOfDay,
	availableDays []time.Weekday,
	image string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Court {
	return &Court{
		id:            id,
		name:          name,
		courtType:     courtType,
		pricePerHour:  pricePerHour,
		description:   description,
		facilities:    nonNil(facilities),
		openingTime:   openingTime,
		closingTime:   closingTime,
		availableDays: nonNil(availableDays),
		image:         image,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Apply validates the merged result before mutating the court.
func (c *Court) Apply(p UpdateParams) error {
	next := *c
	next.name = strings.TrimSpace(patch.Coalesce(p.Name, c.name))
	next.courtType = patch.Coalesce(p.Type, c.courtType)
	next.pricePerHour = patch.Coalesce(p.PricePerHour, c.pricePerHour)
	next.description = patch.Coalesce(p.Description, c.description)
	next.facilities = nonNil(patch.Coalesce(p.Facilities, c.facilities))
	next.openingTime = patch.Coalesce(p.OpeningTime, c.openingTime)
	next.closingTime = patch.Coalesce(p.ClosingTime, c.closingTime)
	next.availableDays = nonNil(patch.Coalesce(p.AvailableDays, c.availableDays))
	next.image = patch.Coalesce(p.Image, c.image)
	next.isActive = patch.Coalesce(p.IsActive, c.isActive)

	if err := next.validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func (c *Court) validate() error {
	if c.name == "" {
		return ErrEmptyCourtName
	}
	if len(c.name) > MaxCourtNameLength {
		return ErrCourtNameTooLong
	}
	if !c.courtType.IsValid() {
		return ErrInvalidType
	}
	if c.pricePerHour <= 0 || c.pricePerHour > MaxPricePerHour {
		return ErrInvalidPrice
	}
	if !c.openingTime.Before(c.closingTime) {
		return ErrInvalidOperatingHours
	}
	for _, d := range c.availableDays {
		if d < time.Sunday || d > time.Saturday {
			return ErrInvalidWeekday
		}
	}
	return nil
}

// OpenOn treats an empty day set as open every day.
func (c *Court) OpenOn(day time.Weekday) bool {
	if len(c.availableDays) == 0 {
		return true
	}
	return slices.Contains(c.availableDays, day)
}

func (c *Court) Covers(i slot.Interval) bool {
	return i.Within(c.openingTime, c.closingTime)
}

func (c *Court) ID() uuid.UUID                 { return c.id }
func (c *Court) Name() string                  { return c.name }
func (c *Court) Type() Type                    { return c.courtType }
func (c *Court) PricePerHour() int64           { return c.pricePerHour }
func (c *Court) Description() string           { return c.description }
func (c *Court) Facilities() []string          { return slices.Clone(c.facilities) }
func (c *Court) OpeningTime() slot.TimeOfDay   { return c.openingTime }
func (c *Court) ClosingTime() slot.TimeOfDay   { return c.closingTime }
func (c *Court) AvailableDays() []time.Weekday { return slices.Clone(c.availableDays) }
func (c *Court) Image() string                 { return c.image }
func (c *Court) IsActive() bool                { return c.isActive }
func (c *Court) CreatedAt() time.Time          { return c.createdAt }
func (c *Court) UpdatedAt() time.Time          { return c.updatedAt }

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
