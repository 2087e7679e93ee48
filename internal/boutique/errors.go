package boutique

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindAuth       Kind = "AUTH"
	KindForbidden  Kind = "FORBIDDEN"
)

// Error is the domain error returned by the ledgers. Anything that is not an
// *Error is treated as an internal failure by the transport layer.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) error { return newErr(KindValidation, format, args...) }
func NotFoundf(format string, args ...any) error   { return newErr(KindNotFound, format, args...) }
func Conflictf(format string, args ...any) error   { return newErr(KindConflict, format, args...) }
func Authf(format string, args ...any) error       { return newErr(KindAuth, format, args...) }
func Forbiddenf(format string, args ...any) error  { return newErr(KindForbidden, format, args...) }

// KindOf returns the kind of a domain error, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
