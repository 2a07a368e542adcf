package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-checkout/internal/domain"
)

var seatIDRgx = regexp.MustCompile(`^[A-Z]+[1-9][0-9]*$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("ticket_category", validateTicketCategory)
	validator.RegisterValidation("seat_id", validateSeatID)

	return validator
}

func validateTicketCategory(fl validator.FieldLevel) bool {
	return domain.TicketCategory(fl.Field().String()).Valid()
}

func validateSeatID(fl validator.FieldLevel) bool {
	return seatIDRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "ticket_category":
		return "must be one of adult, teen, child"
	case "seat_id":
		return "must be a row letter followed by a seat number, e.g. C5"
	default:
		return "is invalid"
	}
}
