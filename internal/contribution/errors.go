package contribution

import (
	"fmt"
)

// Kind identifies the rule that rejected an input.
type Kind string

const (
	KindValidation           Kind = "ValidationError"
	KindMissingName          Kind = "MissingName"
	KindInvalidAmount        Kind = "InvalidAmount"
	KindBelowMinimum         Kind = "BelowMinimum"
	KindExceedsRemaining     Kind = "ExceedsRemaining"
	KindExceedsMaximum       Kind = "ExceedsMaximum"
	KindDuplicateContributor Kind = "DuplicateContributor"
	KindGiftClosed           Kind = "GiftClosed"
)

// Error is a rejection with a kind and a message meant for end users.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind. The message
// is not compared, so the sentinels below match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

var (
	ErrValidation           = &Error{Kind: KindValidation}
	ErrMissingName          = &Error{Kind: KindMissingName}
	ErrInvalidAmount        = &Error{Kind: KindInvalidAmount}
	ErrBelowMinimum         = &Error{Kind: KindBelowMinimum}
	ErrExceedsRemaining     = &Error{Kind: KindExceedsRemaining}
	ErrExceedsMaximum       = &Error{Kind: KindExceedsMaximum}
	ErrDuplicateContributor = &Error{Kind: KindDuplicateContributor}
	ErrGiftClosed           = &Error{Kind: KindGiftClosed}
)
