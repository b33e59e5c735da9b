package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/agenda/internal/httperr"
)

// bindCodes maps binding tags to the codes the use cases would produce.
var bindCodes = map[string]string{
	"ymd":        "invalid_date",
	"hhmm":       "invalid_time",
	"phone":      "phone_invalid",
	"personname": "name_invalid_characters",
	"email":      "email_invalid",
}

// bindError answers a failed ShouldBind* with the first offending field.
func bindError(c *gin.Context, err error) {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		httperr.BadRequest(c, "invalid_request", "Solicitud inválida.")
		return
	}

	fe := ves[0]
	code, ok := bindCodes[fe.Tag()]
	switch {
	case ok:
	case fe.Tag() == "required":
		code = fe.Field() + "_required"
	default:
		code = fe.Field() + "_invalid"
	}

	httperr.FromError(c, httperr.ErrValidation(fe.Field(), code, "Valor inválido para "+fe.Field()+"."), code)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	return toID(c, c.Param(param))
}

// parseOptionalID reads an id filter; empty means no filter.
func parseOptionalID(c *gin.Context, raw string) (uint, bool) {
	if raw == "" {
		return 0, true
	}
	return toID(c, raw)
}

func toID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
