package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
)

// ClockLayout is the wall clock format of treatment begin and end times.
const ClockLayout = "15:04"

var phonePattern = regexp.MustCompile(`^\+\d{1,3} \d{2,13} \d+x?\d{0,20}$`)

// validate is shared by every input type. Custom tags:
//
//	isodate  YYYY-MM-DD calendar date
//	clock    HH:MM wall clock time
//	phone    international number such as "+49 176 12345678"
var validate *validator.Validate

func init() {
	validate = validator.New()
	for tag, fn := range map[string]validator.Func{
		"isodate": validateISODate,
		"clock":   validateClock,
		"phone":   validatePhone,
	} {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	validate.RegisterStructValidation(validateTreatmentTimes, TreatmentInput{})
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if len(v) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, v)
	return err == nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// validateTreatmentTimes rejects a session that ends before it begins.
// Zero-padded clock strings order lexically.
func validateTreatmentTimes(sl validator.StructLevel) {
	in := sl.Current().Interface().(TreatmentInput)
	if len(in.Begin) == len(ClockLayout) && len(in.End) == len(ClockLayout) && in.End < in.Begin {
		sl.ReportError(in.End, "End", "End", "notbeforebegin", "")
	}
}

// PatientInput is the editable part of a patient.
type PatientInput struct {
	FirstName   string `validate:"required"`
	Surname     string `validate:"required"`
	DateOfBirth string `validate:"required,isodate"`
	CareLevel   string `validate:"required"`
	RoomNumber  string `validate:"required"`
}

type CaregiverInput struct {
	FirstName   string `validate:"required"`
	Surname     string `validate:"required"`
	PhoneNumber string `validate:"required,phone"`
}

// TreatmentInput references its caregiver and medicine optionally; zero
// means none.
type TreatmentInput struct {
	PatientID   id.PatientID `validate:"required"`
	Date        string       `validate:"required,isodate"`
	Begin       string       `validate:"required,clock"`
	End         string       `validate:"required,clock"`
	Description string       `validate:"required"`
	Remarks     string
	CaregiverID id.CaregiverID
	MedicineID  id.MedicineID
}

type MedicineInput struct {
	Name            string `validate:"required"`
	StorageLocation string `validate:"required"`
	ExpirationDate  string `validate:"required,isodate"`
}

// UserInput carries the plaintext password; bcrypt caps input at 72 bytes.
type UserInput struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=72"`
}

// validateInput runs the struct rules and turns violations into a single
// validation error naming every offending field.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "validate input")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return dErrors.New(dErrors.CodeValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "isodate":
		return fmt.Sprintf("%s must be a date formatted YYYY-MM-DD, got %q", fe.Field(), fe.Value())
	case "clock":
		return fmt.Sprintf("%s must be a time formatted HH:MM, got %q", fe.Field(), fe.Value())
	case "phone":
		return fmt.Sprintf("%s must look like +49 176 12345678, got %q", fe.Field(), fe.Value())
	case "notbeforebegin":
		return "End must not be before Begin"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// parseDate reads a value that already passed the isodate rule.
func parseDate(v string) time.Time {
	t, _ := time.ParseInLocation(time.DateOnly, v, time.UTC)
	return t
}
