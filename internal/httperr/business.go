package httperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	KindState Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// BusinessError is a recoverable, user-facing rejection. Code is stable and
// machine readable; Message is what staff or clients get to read.
type BusinessError struct {
	Code    string
	Kind    Kind
	Field   string
	Message string
	Details map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrState(code, message string) error {
	return BusinessError{Code: code, Kind: KindState, Message: message}
}

func ErrValidation(field, code, message string) error {
	return BusinessError{Code: code, Kind: KindValidation, Field: field, Message: message}
}

func ErrNotFound(code, message string) error {
	return BusinessError{Code: code, Kind: KindNotFound, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Code: code, Kind: KindConflict, Message: message}
}

// WithDetails returns a copy of a BusinessError carrying extra data.
func WithDetails(err error, details map[string]any) error {
	var be BusinessError
	if !errors.As(err, &be) {
		return err
	}
	be.Details = details
	return be
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsUniqueViolation reports whether err comes from a unique index, for
// PostgreSQL (23505) and SQLite alike.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
