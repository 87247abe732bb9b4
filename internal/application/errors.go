package application

import (
	"errors"
	"fmt"

	"artbind/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidOperation    = errors.New("invalid operation")
	ErrNativeRejection     = errors.New("rejected by engine")
	ErrDiscoveryInProgress = errors.New("discovery already in progress")
	ErrSuperseded          = errors.New("superseded by a newer load")
	ErrClosed              = errors.New("instance closed")

	ErrKindMismatch          = domain.ErrKindMismatch
	ErrReadOnly              = domain.ErrReadOnly
	ErrNormalizationFallback = domain.ErrNormalizationFallback
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports an unknown instance or property path
type NotFoundError struct {
	InstanceID string
	Path       string
}

func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("instance %q not found", e.InstanceID)
	}
	return fmt.Sprintf("property %q not found in instance %q", e.Path, e.InstanceID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NativeError carries the engine's own rejection of a value
type NativeError struct {
	Path string
	Err  error
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("engine rejected %s: %v", e.Path, e.Err)
}

func (e *NativeError) Unwrap() error {
	return e.Err
}

func (e *NativeError) Is(target error) bool {
	return target == ErrNativeRejection
}
