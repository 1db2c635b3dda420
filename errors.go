package chartgeo

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownScale  = errors.New("unknown scale")
	ErrUnknownCurve  = errors.New("unknown curve type")
	ErrUnknownOffset = errors.New("unknown stack offset")
	ErrInvalidBound  = errors.New("invalid domain bound")
	ErrMissingAxis   = errors.New("missing axis")
	ErrLayout        = errors.New("layout not supported")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrEmptyChart    = errors.New("chart has no size")
)

// MissingAxisError is returned when an item references an axis id that was
// never registered in the context.
type MissingAxisError struct {
	Kind AxisKind
	ID   string
	Item string
}

func (e MissingAxisError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("%s(%s): axis not registered", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s: %s(%s): axis not registered", e.Item, e.Kind, e.ID)
}

func (e MissingAxisError) Unwrap() error {
	return ErrMissingAxis
}

// DomainError reports a domain description that can not be parsed.
type DomainError struct {
	Input  string
	Reason string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Input, e.Reason)
}

func (e DomainError) Unwrap() error {
	return ErrInvalidBound
}
