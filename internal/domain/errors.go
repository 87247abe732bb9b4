package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for value normalization
var (
	ErrKindMismatch          = errors.New("kind mismatch")
	ErrReadOnly              = errors.New("read-only property")
	ErrNormalizationFallback = errors.New("normalization fallback")
)

// KindMismatchError reports a supplied value whose shape does not fit the
// property's declared kind
type KindMismatchError struct {
	Kind Kind
	Got  any
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("cannot use %T as %s", e.Got, e.Kind)
}

func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch
}

// NormalizationError is a soft failure: parsing the input failed and
// Fallback was substituted. Callers apply Fallback and log the error.
type NormalizationError struct {
	Kind     Kind
	Input    any
	Reason   string
	Fallback Value
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("%s %v: %s, using %s", e.Kind, e.Input, e.Reason, FormatValue(e.Fallback))
}

func (e *NormalizationError) Is(target error) bool {
	return target == ErrNormalizationFallback
}
