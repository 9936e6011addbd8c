// Package errs classifies the failures that can stop a ggsweep run.
//
// Every error created here carries a stack trace (via github.com/pkg/errors),
// so logging one with %+v shows where it was raised.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind int

const (
	Unknown Kind = iota
	// Rendering is a failure of the host drawing context.
	Rendering
	// Resource is a missing or invalid asset, such as an unknown sprite name.
	Resource
	// Config is malformed configuration content.
	Config
	// Logic is a broken invariant. Always fatal.
	Logic
)

func (kind Kind) String() string {
	switch kind {
	case Rendering:
		return "rendering"
	case Resource:
		return "resource"
	case Config:
		return "config"
	case Logic:
		return "logic"
	default:
		return "unknown"
	}
}

// Error is a classified error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Format prints the wrapped stack trace with %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s error: %+v", e.Kind, e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// ErrStackEmpty is returned when the state stack is asked to run with no
// states left in it.
var ErrStackEmpty = &Error{Kind: Logic, Err: errors.New("state stack is empty")}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Err: errors.New(message)}
}

func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Wrap classifies err and annotates it with message. A nil err stays nil.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrap(err, message)}
}

func Wrapf(kind Kind, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return Unknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
