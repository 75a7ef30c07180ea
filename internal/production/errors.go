package production

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrState      = errors.New("state error")
)

// Error describes a rejected operation. The article is never mutated when an
// operation returns an *Error.
type Error struct {
	Kind  error
	Op    string
	Floor Floor
	Msg   string
}

func (e *Error) Error() string {
	if e.Floor.Valid() {
		return fmt.Sprintf("%s: %s at %s: %s", e.Op, e.Kind, e.Floor, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func validationErr(op string, f Floor, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Op: op, Floor: f, Msg: fmt.Sprintf(format, args...)}
}

func stateErr(op string, f Floor, format string, args ...any) error {
	return &Error{Kind: ErrState, Op: op, Floor: f, Msg: fmt.Sprintf(format, args...)}
}

func notFoundErr(op string, format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}
