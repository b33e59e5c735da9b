package client

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BruksfildServices01/agenda/internal/httperr"
)

const (
	MinNameLength  = 3
	MinPhoneDigits = 10
	MaxPhoneDigits = 15
)

var (
	phonePunctuation = regexp.MustCompile(`[\s\-\(\)]+`)
	phoneShape       = regexp.MustCompile(`^\+?\d+$`)
	emailShape       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Input is what staff submit when creating or editing a client.
type Input struct {
	Name   string
	Phone  string
	Email  string
	Notes  string
	Active *bool
}

// Normalized holds the cleaned values ready to persist.
type Normalized struct {
	Name   string
	Phone  string
	Email  *string
	Notes  string
	Active bool
}

// Normalize validates every field and returns the cleaned client. The first
// violated rule is reported, fields checked in form order.
func Normalize(in Input) (Normalized, error) {
	name, err := NormalizeName(in.Name)
	if err != nil {
		return Normalized{}, err
	}

	phone, err := NormalizePhone(in.Phone)
	if err != nil {
		return Normalized{}, err
	}

	email, err := NormalizeEmail(in.Email)
	if err != nil {
		return Normalized{}, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	return Normalized{
		Name:   name,
		Phone:  phone,
		Email:  email,
		Notes:  strings.TrimSpace(in.Notes),
		Active: active,
	}, nil
}

func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", httperr.ErrValidation("name", "name_required", "El nombre es obligatorio.")
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return "", httperr.ErrValidation("name", "name_too_short", "El nombre debe tener al menos 3 caracteres.")
	}
	if !IsPersonName(name) {
		return "", httperr.ErrValidation("name", "name_invalid_characters", "El nombre solo puede contener letras y espacios.")
	}
	return name, nil
}

// IsPersonName accepts letters (accents included) and spaces only.
func IsPersonName(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return s != ""
}

// NormalizePhone strips separators and returns the digits only.
func NormalizePhone(raw string) (string, error) {
	cleaned := phonePunctuation.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return "", httperr.ErrValidation("phone", "phone_required", "El teléfono es obligatorio.")
	}
	if !phoneShape.MatchString(cleaned) {
		return "", httperr.ErrValidation("phone", "phone_invalid_characters", "El teléfono solo puede contener números y el símbolo +.")
	}

	digits := Digits(cleaned)
	switch {
	case len(digits) < MinPhoneDigits:
		return "", httperr.ErrValidation("phone", "phone_too_short", "El teléfono debe tener al menos 10 dígitos.")
	case len(digits) > MaxPhoneDigits:
		return "", httperr.ErrValidation("phone", "phone_too_long", "El teléfono no puede tener más de 15 dígitos.")
	}

	return digits, nil
}

// IsPhone reports whether raw survives NormalizePhone.
func IsPhone(raw string) bool {
	_, err := NormalizePhone(raw)
	return err == nil
}

// NormalizeEmail lower-cases the address; empty means "no email".
func NormalizeEmail(raw string) (*string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return nil, nil
	}
	if !emailShape.MatchString(email) {
		return nil, httperr.ErrValidation("email", "email_invalid", "Ingrese un correo electrónico válido.")
	}
	return &email, nil
}

// Digits keeps only ASCII digits, the format wa.me expects.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
