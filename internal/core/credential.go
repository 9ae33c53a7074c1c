package core

import "time"

// CredentialSource records where a credential was found. Diagnostic only:
// trust decisions never depend on it.
type CredentialSource string

const (
	SourceOverride   CredentialSource = "override"
	SourceEnv        CredentialSource = "env"
	SourceEnvFile    CredentialSource = "envfile"
	SourceStore      CredentialSource = "store"
	SourceForeignCLI CredentialSource = "foreign-cli"
)

// Credential is an opaque bearer token plus provenance metadata.
type Credential struct {
	Token     string
	ExpiresAt *time.Time
	Source    CredentialSource
}

// Expired reports whether the credential carries an expiry in the past.
// Credentials without an expiry never expire.
func (c Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Preview returns a redacted form safe for display. Short tokens are fully
// masked.
func (c Credential) Preview() string {
	if len(c.Token) < 12 {
		return "****"
	}
	return c.Token[:8] + "..." + c.Token[len(c.Token)-4:]
}
