package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a failure so callers can react without string matching.
type Kind string

const (
	KindAuthRequired     Kind = "auth_required"
	KindPermissionDenied Kind = "permission_denied"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindSlotUnavailable  Kind = "slot_unavailable"
	KindExternal         Kind = "external_service"
	KindInternal         Kind = "internal"
)

// Error is a business failure carrying a stable machine code and a message
// meant for the end user.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func AuthRequired(code, message string) *Error {
	return New(KindAuthRequired, code, message)
}

func PermissionDenied(code, message string) *Error {
	return New(KindPermissionDenied, code, message)
}

func NotFoundErr(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func SlotUnavailable(code, message string) *Error {
	return New(KindSlotUnavailable, code, message)
}

func External(code string, err error) *Error {
	return &Error{Kind: KindExternal, Code: code, Message: "External service failed.", Err: err}
}

// ErrBusiness keeps the short form used across use cases: a validation
// failure identified only by its code.
func ErrBusiness(code string) error {
	return Validation(code, code)
}

func IsBusiness(err error, code string) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the Kind of err, or KindInternal for anything unclassified.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// IsExclusionConflict reports whether err is Postgres rejecting a row through
// the appointments overlap exclusion constraint.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
