package core

import "fmt"

// ProviderIdentity names one of the supported upstream services. The set is
// closed: switches over it are expected to be exhaustive.
type ProviderIdentity string

const (
	ProviderClaude     ProviderIdentity = "claude"
	ProviderOpenAI     ProviderIdentity = "openai"
	ProviderOpenRouter ProviderIdentity = "openrouter"
	ProviderCopilot    ProviderIdentity = "copilot"
	ProviderCodex      ProviderIdentity = "codex"
)

// AllProviderIdentities returns every identity in display order.
func AllProviderIdentities() []ProviderIdentity {
	return []ProviderIdentity{
		ProviderClaude,
		ProviderOpenAI,
		ProviderOpenRouter,
		ProviderCopilot,
		ProviderCodex,
	}
}

// ParseProviderIdentity maps a user-supplied name onto the closed set.
func ParseProviderIdentity(s string) (ProviderIdentity, error) {
	for _, id := range AllProviderIdentities() {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

func (p ProviderIdentity) String() string { return string(p) }
