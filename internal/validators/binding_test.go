package validators

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name  string `validate:"required,personname"`
	Phone string `validate:"required,phone"`
	Date  string `validate:"omitempty,ymd"`
	Time  string `validate:"omitempty,hhmm"`
}

func TestRegisterOn(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	assert.NoError(t, v.Struct(form{Name: "Ana García", Phone: "+52 55-1234-5678", Date: "2025-06-10", Time: "14:00"}))

	err := v.Struct(form{Name: "Ana 2", Phone: "12345", Date: "10/06/2025", Time: "2pm"})
	require.Error(t, err)

	var failed []string
	for _, fe := range err.(validator.ValidationErrors) {
		failed = append(failed, fe.Tag())
	}
	assert.ElementsMatch(t, []string{"personname", "phone", "ymd", "hhmm"}, failed)
}

func TestEmailDomainChecker_Malformed(t *testing.T) {
	c := NewEmailDomainChecker(time.Second)
	assert.False(t, c.Check(context.Background(), "no-at-sign"))
	assert.False(t, c.Check(context.Background(), "trailing@"))
	assert.False(t, c.Check(context.Background(), "@example.com"))
}

func TestRegisterOn_UsesJSONNames(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	type req struct {
		ClientPhone string `json:"client_phone" validate:"phone"`
		From        string `form:"from" validate:"ymd"`
	}

	err := v.Struct(req{ClientPhone: "x", From: "y"})
	require.Error(t, err)

	var fields []string
	for _, fe := range err.(validator.ValidationErrors) {
		fields = append(fields, fe.Field())
	}
	assert.Equal(t, []string{"client_phone", "from"}, fields)
}
