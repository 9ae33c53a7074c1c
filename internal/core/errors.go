package core

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies a provider failure so the rendering layer can give a
// targeted hint (re-login, top up credits, wait out a rate limit) instead of
// one generic message.
type ErrorKind string

const (
	ErrNotConfigured   ErrorKind = "not_configured"
	ErrAuth            ErrorKind = "auth"
	ErrRateLimited     ErrorKind = "rate_limited"
	ErrPaymentRequired ErrorKind = "payment_required"
	ErrTimeout         ErrorKind = "timeout"
	ErrNetwork         ErrorKind = "network"
	ErrUnexpected      ErrorKind = "unexpected"
)

// ProviderError is the error payload of a failed ProviderResult.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	// Raw holds diagnostic detail, e.g. an HTTP status code and body excerpt.
	Raw map[string]string
}

func (e *ProviderError) Error() string {
	return e.Message
}

func NewProviderError(kind ErrorKind, format string, args ...any) *ProviderError {
	return &ProviderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ClassifyTransportError splits a failed HTTP round trip into timeout vs
// transport failure. Anything unrecognized is a network error.
func ClassifyTransportError(err error) *ProviderError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewProviderError(ErrTimeout, "request timed out")
	}
	return NewProviderError(ErrNetwork, "network error: %v", err)
}
