package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. Match with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindStorage    ErrorKind = "storage"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Msg  string // human readable, safe to show to the operator
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := e.Msg
	if base == "" {
		base = fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrValidation) and friends match on the kind.
func (e *OpError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrStorage:
		return e.Kind == KindStorage
	}
	return false
}

func Validation(op, msg string) error {
	return &OpError{Op: op, Kind: KindValidation, Msg: msg}
}

func NotFound(op, msg string) error {
	return &OpError{Op: op, Kind: KindNotFound, Msg: msg}
}

func Storage(op, msg string, err error) error {
	return &OpError{Op: op, Kind: KindStorage, Msg: msg, Err: err}
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Message returns the operator-facing text of err without the wrapped cause.
func Message(err error) string {
	var oe *OpError
	if errors.As(err, &oe) && oe.Msg != "" {
		return oe.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
