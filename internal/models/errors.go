package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure by the pipeline step that produced it.
type ErrorKind string

const (
	KindConfig        ErrorKind = "config"
	KindBrowserLaunch ErrorKind = "browser_launch"
	KindElementWait   ErrorKind = "element_wait"
	KindCapture       ErrorKind = "capture"
	KindIO            ErrorKind = "io"
)

// Sentinels for errors.Is checks against a classified *Error.
var (
	ErrConfig        = errors.New("configuration error")
	ErrBrowserLaunch = errors.New("browser launch failed")
	ErrElementWait   = errors.New("timed out waiting for element")
	ErrCapture       = errors.New("screenshot capture failed")
	ErrIO            = errors.New("write failed")
)

// Error is a terminal pipeline failure.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewError classifies err under kind. A nil err yields nil.
func NewError(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.sentinel(), e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindConfig:
		return ErrConfig
	case KindBrowserLaunch:
		return ErrBrowserLaunch
	case KindElementWait:
		return ErrElementWait
	case KindCapture:
		return ErrCapture
	default:
		return ErrIO
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
