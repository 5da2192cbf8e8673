// Package validation checks referral candidates before anything is persisted.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Code classifies why a field was rejected.
type Code string

const (
	RequiredFieldMissing Code = "RequiredFieldMissing"
	InvalidFormat        Code = "InvalidFormat"
)

// FieldError describes the rejection of a single field.
type FieldError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ValidationError carries every rejected field, keyed by its JSON name.
type ValidationError struct {
	Fields map[string]FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name].Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Candidate is unvalidated referral input as entered by the user.
type Candidate struct {
	GivenName string `json:"given_name" validate:"required"`
	Surname   string `json:"surname" validate:"required"`
	Email     string `json:"email" validate:"email"`
	Phone     string `json:"phone" validate:"required"`
	HomeNo    string `json:"home_no"`
	Street    string `json:"street"`
	Suburb    string `json:"suburb"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country" validate:"required"`
	AvatarURL string `json:"avatar_url"`
}

// Fields is a validated candidate. Optional values left blank are nil.
type Fields struct {
	GivenName string
	Surname   string
	Email     string
	Phone     string
	HomeNo    *string
	Street    *string
	Suburb    *string
	State     *string
	Postcode  *string
	Country   string
	AvatarURL *string
}

var messages = map[string]string{
	"given_name": "Given name is required",
	"surname":    "Surname is required",
	"email":      "Invalid email address",
	"phone":      "Phone number is required",
	"country":    "Country is required",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate trims every value and checks the required and formatted fields. A
// value made only of whitespace counts as missing; avatar_url is free text.
// It performs no I/O and is safe for concurrent use.
func Validate(candidate Candidate) (Fields, error) {
	c := trim(candidate)

	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return Fields{}, fmt.Errorf("failed to validate referral: %w", err)
		}
		return Fields{}, toValidationError(validationErrs)
	}

	return Fields{
		GivenName: c.GivenName,
		Surname:   c.Surname,
		Email:     c.Email,
		Phone:     c.Phone,
		HomeNo:    optional(c.HomeNo),
		Street:    optional(c.Street),
		Suburb:    optional(c.Suburb),
		State:     optional(c.State),
		Postcode:  optional(c.Postcode),
		Country:   c.Country,
		AvatarURL: optional(c.AvatarURL),
	}, nil
}

// FromMap builds a candidate from field name to value pairs. Unknown keys are ignored.
func FromMap(values map[string]string) Candidate {
	var c Candidate
	for key, value := range values {
		switch key {
		case "given_name":
			c.GivenName = value
		case "surname":
			c.Surname = value
		case "email":
			c.Email = value
		case "phone":
			c.Phone = value
		case "home_no":
			c.HomeNo = value
		case "street":
			c.Street = value
		case "suburb":
			c.Suburb = value
		case "state":
			c.State = value
		case "postcode":
			c.Postcode = value
		case "country":
			c.Country = value
		case "avatar_url":
			c.AvatarURL = value
		}
	}
	return c
}

func toValidationError(validationErrs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{Fields: make(map[string]FieldError, len(validationErrs))}
	for _, fieldErr := range validationErrs {
		name := fieldErr.Field()
		code := InvalidFormat
		if fieldErr.Tag() == "required" {
			code = RequiredFieldMissing
		}
		message, ok := messages[name]
		if !ok {
			message = fmt.Sprintf("%s is invalid", name)
		}
		out.Fields[name] = FieldError{Code: code, Message: message}
	}
	return out
}

func trim(c Candidate) Candidate {
	return Candidate{
		GivenName: strings.TrimSpace(c.GivenName),
		Surname:   strings.TrimSpace(c.Surname),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
		HomeNo:    strings.TrimSpace(c.HomeNo),
		Street:    strings.TrimSpace(c.Street),
		Suburb:    strings.TrimSpace(c.Suburb),
		State:     strings.TrimSpace(c.State),
		Postcode:  strings.TrimSpace(c.Postcode),
		Country:   strings.TrimSpace(c.Country),
		AvatarURL: strings.TrimSpace(c.AvatarURL),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
