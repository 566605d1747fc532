package reservation

import (
	"errors"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"
)

var ErrInvalidRate = errors.New("hourly rate must be between 1 and 100000000")

func validRate(rate int64) bool {
	return rate > 0 && rate <= court.MaxPricePerHour
}

type PricingMode string

const (
	PricingProrated  PricingMode = "prorated"
	PricingWholeHour PricingMode = "whole_hour"
)

// PriceCalculator turns an hourly rate in minor units into the total for an interval.
type PriceCalculator interface {
	Calculate(hourlyRate int64, interval slot.Interval) (Money, error)
}

// ProratedPriceCalculator bills by the minute, rounding half up.
type ProratedPriceCalculator struct{}

func (ProratedPriceCalculator) Calculate(hourlyRate int64, interval slot.Interval) (Money, error) {
	if !validRate(hourlyRate) {
		return Money{}, ErrInvalidRate
	}
	minutes := int64(interval.Minutes())
	return NewMoney((hourlyRate*minutes + 30) / 60)
}

// WholeHourPriceCalculator subtracts hour components and ignores minutes,
// so 10:30-11:45 is billed as one hour.
type WholeHourPriceCalculator struct{}

func (WholeHourPriceCalculator) Calculate(hourlyRate int64, interval slot.Interval) (Money, error) {
	if !validRate(hourlyRate) {
		return Money{}, ErrInvalidRate
	}
	hours := int64(interval.End().Hour() - interval.Start().Hour())
	return NewMoney(hourlyRate * hours)
}

// NewPriceCalculator falls back to prorated billing for unknown modes.
func NewPriceCalculator(mode PricingMode) PriceCalculator {
	if mode == PricingWholeHour {
		return WholeHourPriceCalculator{}
	}
	return ProratedPriceCalculator{}
}

// ComputePrice prices start-end at hourlyRate using prorated billing.
func ComputePrice(hourlyRate int64, start, end string) (Money, error) {
	interval, err := slot.NewInterval(start, end)
	if err != nil {
		return Money{}, err
	}
	return ProratedPriceCalculator{}.Calculate(hourlyRate, interval)
}
