package request

import (
	"errors"
	"fmt"
	"sync"

	"court-booking/internal/domain/court"
	"court-booking/internal/domain/slot"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// RegisterValidators adds the booking tags (hhmm, weekday, courttype) to gin's
// binding engine. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		for tag, fn := range map[string]validator.Func{
			"hhmm":      validateTimeOfDay,
			"weekday":   validateWeekday,
			"courttype": validateCourtType,
		} {
			if err = v.RegisterValidation(tag, fn); err != nil {
				return
			}
		}
	})
	return err
}

func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, err := slot.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, err := court.ParseWeekday(fl.Field().String())
	return err == nil
}

func validateCourtType(fl validator.FieldLevel) bool {
	_, err := court.ParseType(fl.Field().String())
	return err == nil
}

// FieldErrors flattens binding failures for the error detail. Non-validation
// errors (malformed JSON) return nil.
func FieldErrors(err error) []FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "hhmm":
		return "must be a time in HH:MM format"
	case "weekday":
		return "must be a day name such as Monday"
	case "courttype":
		return "must be one of Indoor, Outdoor, Premium"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a UUID"
	case "min", "max", "gt", "oneof":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
