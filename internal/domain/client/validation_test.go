package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda/internal/httperr"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		code string
	}{
		{in: "5512345678", want: "5512345678"},
		{in: "+52 (55) 1234-5678", want: "525512345678"},
		{in: " 123456789012345 ", want: "123456789012345"},
		{in: "", code: "phone_required"},
		{in: "55-1234-567", code: "phone_too_short"},
		{in: "1234567890123456", code: "phone_too_long"},
		{in: "55.1234.5678", code: "phone_invalid_characters"},
		{in: "55123456+78", code: "phone_invalid_characters"},
	}

	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if tc.code != "" {
			assert.True(t, httperr.IsBusiness(err, tc.code), "input %q: got %v", tc.in, err)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
		assert.GreaterOrEqual(t, len(got), MinPhoneDigits)
		assert.LessOrEqual(t, len(got), MaxPhoneDigits)
	}
}

func TestNormalizePhone_DigitCountAlwaysInRange(t *testing.T) {
	for n := 1; n <= 20; n++ {
		raw := strings.Repeat("7", n)
		got, err := NormalizePhone(raw)
		if n < MinPhoneDigits || n > MaxPhoneDigits {
			assert.Error(t, err, "%d digits", n)
			continue
		}
		require.NoError(t, err)
		assert.Len(t, got, n)
	}
}

func TestNormalizeName(t *testing.T) {
	got, err := NormalizeName("  Ana García ")
	require.NoError(t, err)
	assert.Equal(t, "Ana García", got)

	_, err = NormalizeName("Al")
	assert.True(t, httperr.IsBusiness(err, "name_too_short"))

	_, err = NormalizeName("   ")
	assert.True(t, httperr.IsBusiness(err, "name_required"))

	_, err = NormalizeName("R2D2 Droid")
	assert.True(t, httperr.IsBusiness(err, "name_invalid_characters"))

	got, err = NormalizeName("Íñigo Muñoz")
	require.NoError(t, err)
	assert.Equal(t, "Íñigo Muñoz", got)
}

func TestNormalizeEmail(t *testing.T) {
	email, err := NormalizeEmail("  Ana.Garcia@Example.COM ")
	require.NoError(t, err)
	require.NotNil(t, email)
	assert.Equal(t, "ana.garcia@example.com", *email)

	email, err = NormalizeEmail("")
	require.NoError(t, err)
	assert.Nil(t, email)

	_, err = NormalizeEmail("ana@localhost")
	assert.True(t, httperr.IsBusiness(err, "email_invalid"))
}

func TestNormalize_ReportsFirstField(t *testing.T) {
	_, err := Normalize(Input{Name: "Al", Phone: "12"})

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "name", be.Field)
	assert.Equal(t, httperr.KindValidation, be.Kind)
}

func TestNormalize_DefaultsActive(t *testing.T) {
	n, err := Normalize(Input{Name: "Ana García", Phone: "55 1234 5678", Notes: " alérgica "})
	require.NoError(t, err)

	assert.True(t, n.Active)
	assert.Equal(t, "5512345678", n.Phone)
	assert.Equal(t, "alérgica", n.Notes)
	assert.Nil(t, n.Email)

	inactive := false
	n, err = Normalize(Input{Name: "Ana García", Phone: "5512345678", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, n.Active)
}
