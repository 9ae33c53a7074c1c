// Package providers wires the concrete provider implementations to the
// closed identity set.
package providers

import (
	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/providers/claude"
	"github.com/janekbaraniewski/usagetui/internal/providers/codex"
	"github.com/janekbaraniewski/usagetui/internal/providers/copilot"
	"github.com/janekbaraniewski/usagetui/internal/providers/openai"
	"github.com/janekbaraniewski/usagetui/internal/providers/openrouter"
)

// All returns one provider per identity, in display order, sharing the
// given resolver.
func All(resolver *credentials.Resolver) []core.Provider {
	return []core.Provider{
		claude.New(resolver),
		openai.New(resolver),
		openrouter.New(resolver),
		copilot.New(resolver),
		codex.New(resolver),
	}
}

// Lookup finds one provider by identity.
func Lookup(resolver *credentials.Resolver, id core.ProviderIdentity) (core.Provider, error) {
	return core.RequireProvider(All(resolver), id)
}
