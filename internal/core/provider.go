package core

import (
	"context"
	"io"
)

// ProviderInfo is static metadata for help and doctor output.
type ProviderInfo struct {
	Name        string // e.g. "GitHub Copilot"
	Description string
	Official    bool   // whether the endpoint is a documented public API
	Note        string // caveats, e.g. "requires organization admin key"
	EnvVar      string // environment variable consulted first
	DocURL      string
}

// Provider is one upstream service. Fetch maps every expected failure
// (missing credential, auth rejection, rate limit, timeout, transport) into
// an error-tagged result; it never panics and never returns a Go error for
// those. Implementations keep truly unexpected conditions inside
// ErrUnexpected so one misbehaving upstream can't abort aggregation.
type Provider interface {
	ID() ProviderIdentity

	Describe() ProviderInfo

	// IsConfigured is a cheap credential-presence check with no network I/O.
	IsConfigured() bool

	Fetch(ctx context.Context, window WindowPeriod) ProviderResult
}

// LoginProvider is the optional login capability. The user-facing code and
// verification URI are written to out before the call blocks on
// authorization.
type LoginProvider interface {
	Provider

	Login(ctx context.Context, out io.Writer) (Credential, error)
}
