package services

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrConfigurationMissing is returned when a provider has no credential configured
var ErrConfigurationMissing = errors.New("provider credentials not configured")

// ErrDataUnavailable is returned when a provider answers but has no data for the symbol
var ErrDataUnavailable = errors.New("no data available for symbol")

// ErrCircuitOpen is returned when a provider's circuit breaker rejects a call
var ErrCircuitOpen = errors.New("circuit breaker open")

// ProviderError is a non-success answer from a provider: an HTTP error status,
// an error payload in a 200 response, or a body that could not be decoded.
type ProviderError struct {
	Provider   string
	Operation  string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %s", e.Provider, e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Operation, e.Message)
}

// NetworkError wraps a transport failure talking to a provider
type NetworkError struct {
	Provider  string
	Operation string
	Err       error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Error types used as metric and log labels
const (
	ErrorTypeConfigurationMissing = "configuration_missing"
	ErrorTypeProvider             = "provider_error"
	ErrorTypeDataUnavailable      = "data_unavailable"
	ErrorTypeNetwork              = "network_error"
	ErrorTypeTimeout              = "timeout"
	ErrorTypeCircuitOpen          = "circuit_open"
	ErrorTypeUnknown              = "unknown"
)

// ClassifyError maps an error from a provider call to one of the error types
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	var netErr net.Error
	var providerErr *ProviderError
	var networkErr *NetworkError

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrorTypeTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrorTypeTimeout
	case errors.Is(err, ErrCircuitOpen):
		return ErrorTypeCircuitOpen
	case errors.Is(err, ErrConfigurationMissing):
		return ErrorTypeConfigurationMissing
	case errors.Is(err, ErrDataUnavailable):
		return ErrorTypeDataUnavailable
	case errors.As(err, &providerErr):
		return ErrorTypeProvider
	case errors.As(err, &networkErr):
		return ErrorTypeNetwork
	default:
		return ErrorTypeUnknown
	}
}
