package stegano

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded  = errors.New("payload exceeds image capacity")
	ErrSentinelNotFound  = errors.New("sentinel not found")
	ErrInsufficientData  = errors.New("insufficient data for RS analysis")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// CapacityError reports an embed request that does not fit the image.
// Both sizes are in bytes and include the sentinel.
type CapacityError struct {
	MaxBytes       int
	RequestedBytes int
	SentinelBytes  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: maximum %d bytes, requested %d bytes (sentinel %d bytes)",
		ErrCapacityExceeded, e.MaxBytes, e.RequestedBytes, e.SentinelBytes)
}

func (e *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// NotFoundError is returned by Extract when the whole image was read without
// meeting the sentinel. Partial holds every complete byte that was read.
type NotFoundError struct {
	Partial []byte
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s after %d bytes", ErrSentinelNotFound, len(e.Partial))
}

func (e *NotFoundError) Unwrap() error { return ErrSentinelNotFound }

// InsufficientDataError is returned by Analyze when the analyzed channel
// cannot form a single group.
type InsufficientDataError struct {
	Channel Channel
	Samples int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s channel has %d samples", ErrInsufficientData, e.Channel, e.Samples)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }
