// Package apperr defines the error taxonomy shared by all services.
// Every violation is detected before any write, so an apperr returned
// from a service implies no state change happened.
package apperr

import "errors"

type Kind int

const (
	KindInternal Kind = iota
	KindInvalid       // missing/blank field, malformed identifier
	KindNotFound      // entity id does not resolve
	KindForbidden     // authenticated but lacking capability
	KindConflict      // state-transition precondition violated
)

// Error carries a taxonomy kind plus a caller-facing message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func Invalid(msg string) error   { return &Error{Kind: KindInvalid, Msg: msg} }
func NotFound(msg string) error  { return &Error{Kind: KindNotFound, Msg: msg} }
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) error  { return &Error{Kind: KindConflict, Msg: msg} }

// KindOf extracts the taxonomy kind of err. Store-level and other
// unclassified failures report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
