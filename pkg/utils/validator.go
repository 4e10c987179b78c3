package util

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("hasuppercase", validateHasUppercase)
	Validate.RegisterValidation("notpastdate", validateNotPastDate)
	Validate.RegisterValidation("maxfuturemonths", validateMaxFutureMonths)
}

func validateHasUppercase(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	return regexp.MustCompile(`[A-Z]`).MatchString(password)
}

func validateNotPastDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		// Format errors are the datetime tag's job.
		return true
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !date.Before(today)
}

func validateMaxFutureMonths(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	months, err := strconv.Atoi(fl.Param())
	if err != nil {
		return true
	}

	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return true
	}

	return !date.After(time.Now().AddDate(0, months, 0))
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := Validate.Struct(s)
	if err != nil {

		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.Field = err.Field()
			element.Tag = err.Tag()

			switch err.Tag() {
			case "required":
				element.Msg = fmt.Sprintf("Field '%s' is required.", element.Field)
			case "min":
				element.Msg = fmt.Sprintf("Field '%s' must have at least %s characters/value.", element.Field, err.Param())
			case "max":
				element.Msg = fmt.Sprintf("Field '%s' must have at most %s characters/value.", element.Field, err.Param())
			case "email":
				element.Msg = "Invalid email format."
			case "hasuppercase":
				element.Msg = "Password must contain at least one uppercase letter."
			case "datetime":
				element.Msg = fmt.Sprintf("Field '%s' must be a date in %s format.", element.Field, err.Param())
			case "gtefield":
				element.Msg = "End date cannot be before start date."
			case "notpastdate":
				element.Msg = fmt.Sprintf("Field '%s' cannot be before today.", element.Field)
			case "maxfuturemonths":
				element.Msg = fmt.Sprintf("Field '%s' cannot be more than %s months in the future.", element.Field, err.Param())
			case "oneof":
				element.Msg = fmt.Sprintf("Field '%s' must be one of: %s.", element.Field, err.Param())
			default:
				element.Msg = fmt.Sprintf("Field '%s' failed validation for tag '%s'.", element.Field, element.Tag)
			}
			errors = append(errors, &element)
		}
	}
	return errors
}
