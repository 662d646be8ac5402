package intake

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// phonePattern accepts the characters phone numbers are written with:
// digits, spaces, and + - ( ) .
var phonePattern = regexp.MustCompile(`^[0-9+\-\s().]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone", validatePhone)
	// Report errors under the wire names the form posts, not Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// fieldMessages maps field name and failed tag to the message shown next to
// the input. Age range and type messages live in Validate because age is
// coerced by hand.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "name is required",
		"max":      "name must be at most 100 characters",
	},
	"age": {
		"required": "age is required",
	},
	"gender": {
		"required": "gender is required",
		"oneof":    "gender must be one of male, female, other",
	},
	"contactNumber": {
		"required": "contact number is required",
		"min":      "contact number must be 7-20 characters",
		"max":      "contact number must be 7-20 characters",
		"phone":    "contact number may only contain digits, spaces, and + - ( ) .",
	},
	"email": {
		"required": "email is required",
		"email":    "email must be a valid email address",
		"max":      "email must be at most 255 characters",
	},
	"problem": {
		"required": "problem is required",
		"max":      "problem must be at most 1000 characters",
	},
}

func messageFor(field, tag string) string {
	if tags, ok := fieldMessages[field]; ok {
		if msg, ok := tags[tag]; ok {
			return msg
		}
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Validate checks every field and reports all problems at once; the order
// fields are checked in never matters. When the returned FieldErrors is
// empty, the Request is normalized and safe to submit.
func (f Form) Validate() (Request, FieldErrors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Age = strings.TrimSpace(f.Age)
	f.Gender = strings.TrimSpace(f.Gender)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.Email = strings.TrimSpace(f.Email)
	f.Problem = strings.TrimSpace(f.Problem)

	fieldErrs := FieldErrors{}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrs[fe.Field()] = messageFor(fe.Field(), fe.Tag())
			}
		}
	}

	// Age arrives as text and is coerced before range-checking. A value that
	// does not parse is a type error against the field, never a default.
	age := 0
	if _, reported := fieldErrs["age"]; !reported {
		n, err := strconv.Atoi(f.Age)
		switch {
		case err != nil:
			fieldErrs["age"] = "age must be a number"
		case n < 1 || n > 150:
			fieldErrs["age"] = "age must be between 1 and 150"
		default:
			age = n
		}
	}

	if len(fieldErrs) > 0 {
		return Request{}, fieldErrs
	}

	return Request{
		Name:          f.Name,
		Age:           age,
		Gender:        f.Gender,
		ContactNumber: f.ContactNumber,
		Email:         f.Email,
		Problem:       f.Problem,
	}, nil
}

// ValidateField checks one field in isolation, for front ends that validate
// answer by answer. Returns the message for that field, or "" when valid.
func ValidateField(field, value string) string {
	var f Form
	switch field {
	case "name":
		f.Name = value
	case "age":
		f.Age = value
	case "gender":
		f.Gender = value
	case "contactNumber":
		f.ContactNumber = value
	case "email":
		f.Email = value
	case "problem":
		f.Problem = value
	default:
		return ""
	}
	_, errs := f.Validate()
	return errs[field]
}
