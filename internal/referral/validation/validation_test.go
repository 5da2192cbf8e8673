package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() Candidate {
	return Candidate{
		GivenName: "Ada",
		Surname:   "Lovelace",
		Email:     "a@b.com",
		Phone:     "0400000000",
		Country:   "UK",
	}
}

func TestValidate_SingleFieldFailures(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Candidate)
		wantField string
		wantCode  Code
		wantMsg   string
	}{
		{
			name:      "missing given name",
			mutate:    func(c *Candidate) { c.GivenName = "" },
			wantField: "given_name",
			wantCode:  RequiredFieldMissing,
			wantMsg:   "Given name is required",
		},
		{
			name:      "blank surname",
			mutate:    func(c *Candidate) { c.Surname = "   " },
			wantField: "surname",
			wantCode:  RequiredFieldMissing,
			wantMsg:   "Surname is required",
		},
		{
			name:      "missing phone",
			mutate:    func(c *Candidate) { c.Phone = "" },
			wantField: "phone",
			wantCode:  RequiredFieldMissing,
			wantMsg:   "Phone number is required",
		},
		{
			name:      "missing country",
			mutate:    func(c *Candidate) { c.Country = "" },
			wantField: "country",
			wantCode:  RequiredFieldMissing,
			wantMsg:   "Country is required",
		},
		{
			name:      "malformed email",
			mutate:    func(c *Candidate) { c.Email = "not-an-email" },
			wantField: "email",
			wantCode:  InvalidFormat,
			wantMsg:   "Invalid email address",
		},
		{
			name:      "empty email",
			mutate:    func(c *Candidate) { c.Email = "" },
			wantField: "email",
			wantCode:  InvalidFormat,
			wantMsg:   "Invalid email address",
		},
		{
			name:      "whitespace only given name",
			mutate:    func(c *Candidate) { c.GivenName = " \t " },
			wantField: "given_name",
			wantCode:  RequiredFieldMissing,
			wantMsg:   "Given name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(&c)

			_, err := Validate(c)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Len(t, validationErr.Fields, 1)
			assert.Equal(t, FieldError{Code: tt.wantCode, Message: tt.wantMsg}, validationErr.Fields[tt.wantField])
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	_, err := Validate(Candidate{})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Fields, 5)
	assert.Contains(t, err.Error(), "country: Country is required")
}

func TestValidate_Success(t *testing.T) {
	c := validCandidate()
	c.GivenName = "  Ada "
	c.Suburb = "Fitzroy"
	c.State = "   "
	c.AvatarURL = "http://localhost:8080/storage/v1/object/public/avatars/avatars/x.png"

	fields, err := Validate(c)
	require.NoError(t, err)

	assert.Equal(t, "Ada", fields.GivenName)
	assert.Equal(t, "a@b.com", fields.Email)
	require.NotNil(t, fields.Suburb)
	assert.Equal(t, "Fitzroy", *fields.Suburb)
	assert.Nil(t, fields.State)
	assert.Nil(t, fields.HomeNo)
	require.NotNil(t, fields.AvatarURL)
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"given_name": "Ada",
		"surname":    "Lovelace",
		"email":      "a@b.com",
		"phone":      "1",
		"country":    "UK",
		"postcode":   "3000",
		"unknown":    "ignored",
	})

	assert.Equal(t, "Ada", c.GivenName)
	assert.Equal(t, "3000", c.Postcode)

	_, err := Validate(c)
	assert.NoError(t, err)
}

func TestValidate_AvatarURLIsFreeText(t *testing.T) {
	tests := []struct {
		name      string
		avatarURL string
		want      *string
	}{
		{name: "bare blob path", avatarURL: "avatars/abc.png", want: strPtr("avatars/abc.png")},
		{name: "relative public path", avatarURL: "/storage/v1/object/public/avatars/avatars/a.png", want: strPtr("/storage/v1/object/public/avatars/avatars/a.png")},
		{name: "single word", avatarURL: "x", want: strPtr("x")},
		{name: "padded", avatarURL: "  https://cdn.example.com/a.png  ", want: strPtr("https://cdn.example.com/a.png")},
		{name: "blank", avatarURL: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			c.AvatarURL = tt.avatarURL

			fields, err := Validate(c)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fields.AvatarURL)
		})
	}
}

func strPtr(s string) *string {
	return &s
}
