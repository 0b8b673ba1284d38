package review

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// SubmitRequest is a public testimonial submission.
type SubmitRequest struct {
	Name              string `json:"name" validate:"required,nocontrol"`
	Email             string `json:"email" validate:"required,mailaddr"`
	Rating            int    `json:"rating" validate:"required,min=1,max=5"`
	Review            string `json:"review" validate:"required"`
	YearsOfExperience *int   `json:"yearsOfExperience"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("mailaddr", func(fl validator.FieldLevel) bool {
		return validEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("nocontrol", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsControl) < 0
	})
	return v
}

// Validate checks a submission. Missing fields are reported before an
// out-of-range rating, which is reported before a malformed email.
func Validate(req SubmitRequest) error {
	req = normalize(req)

	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var rangeErr, emailErr, nameErr *ValidationError
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return &ValidationError{Field: fe.Field(), Err: ErrMissingField}
		case "min", "max":
			if rangeErr == nil {
				rangeErr = &ValidationError{Field: fe.Field(), Err: ErrRatingOutOfRange}
			}
		case "mailaddr":
			emailErr = &ValidationError{Field: fe.Field(), Err: ErrInvalidEmail}
		case "nocontrol":
			nameErr = &ValidationError{Field: fe.Field(), Err: ErrInvalidName}
		}
	}
	if rangeErr != nil {
		return rangeErr
	}
	if emailErr != nil {
		return emailErr
	}
	if nameErr != nil {
		return nameErr
	}
	return err
}

func normalize(req SubmitRequest) SubmitRequest {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Review = strings.TrimSpace(req.Review)
	return req
}

// validEmail accepts local@domain.tld shaped ASCII addresses.
func validEmail(s string) bool {
	if s == "" || strings.Count(s, "@") != 1 {
		return false
	}
	for _, r := range s {
		if r > 127 || r <= ' ' {
			return false
		}
	}
	at := strings.IndexByte(s, '@')
	local, domain := s[:at], s[at+1:]
	if local == "" || !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
