package credentials

import (
	"os"

	"github.com/janekbaraniewski/usagetui/internal/core"
)

// EnvVars fixes the environment variable consulted for each provider.
var EnvVars = map[core.ProviderIdentity]string{
	core.ProviderClaude:     "CLAUDE_CODE_OAUTH_TOKEN",
	core.ProviderOpenAI:     "OPENAI_ADMIN_KEY",
	core.ProviderOpenRouter: "OPENROUTER_API_KEY",
	core.ProviderCopilot:    "GITHUB_TOKEN",
	core.ProviderCodex:      "CODEX_ACCESS_TOKEN",
}

// Source is one step of the resolution chain.
type Source func(id core.ProviderIdentity) (core.Credential, bool)

// Resolver walks an ordered list of sources and returns the first hit.
// Adding a new source (say, a secrets manager) is a one-line insertion in
// the chain; no step performs network I/O, so resolution always
// terminates.
type Resolver struct {
	sources []Source
}

// NewResolver builds the default chain: process environment, local env
// file, then the provider-specific store chain.
func NewResolver() *Resolver {
	return &Resolver{sources: []Source{
		FromEnv,
		FromEnvFile,
		FromStores,
	}}
}

// NewResolverWithSources builds a custom chain, used by tests and by
// callers injecting an explicit override.
func NewResolverWithSources(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// WithOverride returns a resolver that consults the fixed token first.
// An empty token adds nothing.
func (r *Resolver) WithOverride(id core.ProviderIdentity, token string) *Resolver {
	if token == "" {
		return r
	}
	override := func(want core.ProviderIdentity) (core.Credential, bool) {
		if want != id {
			return core.Credential{}, false
		}
		return core.Credential{Token: token, Source: core.SourceOverride}, true
	}
	return &Resolver{sources: append([]Source{override}, r.sources...)}
}

// Resolve walks the chain. Absence is a normal outcome, not an error.
func (r *Resolver) Resolve(id core.ProviderIdentity) (core.Credential, bool) {
	for _, source := range r.sources {
		if cred, ok := source(id); ok {
			return cred, true
		}
	}
	return core.Credential{}, false
}

// IsConfigured reports whether any source yields a credential. Same chain
// as Resolve, so the two can never disagree.
func (r *Resolver) IsConfigured(id core.ProviderIdentity) bool {
	_, ok := r.Resolve(id)
	return ok
}

// FromEnv reads the provider's fixed environment variable.
func FromEnv(id core.ProviderIdentity) (core.Credential, bool) {
	name, ok := EnvVars[id]
	if !ok {
		return core.Credential{}, false
	}
	if token := os.Getenv(name); token != "" {
		return core.Credential{Token: token, Source: core.SourceEnv}, true
	}
	return core.Credential{}, false
}

// FromEnvFile reads the provider's variable from the local env file,
// checked only after the process environment.
func FromEnvFile(id core.ProviderIdentity) (core.Credential, bool) {
	name, ok := EnvVars[id]
	if !ok {
		return core.Credential{}, false
	}
	if token := LoadEnvFile()[name]; token != "" {
		return core.Credential{Token: token, Source: core.SourceEnvFile}, true
	}
	return core.Credential{}, false
}

// FromStores consults the provider-specific store chain in its fixed
// order. OpenAI and OpenRouter are key-only providers with no store.
func FromStores(id core.ProviderIdentity) (core.Credential, bool) {
	switch id {
	case core.ProviderClaude:
		return LoadClaudeCLIToken(ClaudeCLICredentialPath())
	case core.ProviderCodex:
		if cred, ok := NewStore(id).Load(); ok {
			return cred, true
		}
		return LoadCodexCLIToken(CodexCLIAuthPath())
	case core.ProviderCopilot:
		if cred, ok := NewStore(id).Load(); ok {
			return cred, true
		}
		return LoadCodexBarToken(CodexBarConfigPath(), id)
	case core.ProviderOpenAI, core.ProviderOpenRouter:
		return core.Credential{}, false
	}
	return core.Credential{}, false
}
