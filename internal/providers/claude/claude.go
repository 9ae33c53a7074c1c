// Package claude reports Claude Code subscription quota through the
// unofficial OAuth usage endpoint (the one the Claude CLI itself queries),
// using a beta header to opt into the OAuth surface.
package claude

import (
	"context"
	"net/http"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/parsers"
	"github.com/janekbaraniewski/usagetui/internal/providers/shared"
)

const (
	defaultUsageURL = "https://api.anthropic.com/api/oauth/usage"
	betaHeader      = "oauth-2025-04-20"
)

type Provider struct {
	resolver *credentials.Resolver
	usageURL string
	client   *http.Client
}

func New(resolver *credentials.Resolver) *Provider {
	return &Provider{
		resolver: resolver,
		usageURL: defaultUsageURL,
		client:   shared.NewHTTPClient(),
	}
}

func (p *Provider) ID() core.ProviderIdentity { return core.ProviderClaude }

func (p *Provider) Describe() core.ProviderInfo {
	return core.ProviderInfo{
		Name:        "Claude Code",
		Description: "Claude Code subscription quota via OAuth",
		Official:    false,
		Note:        "Uses unofficial OAuth endpoint with beta header",
		EnvVar:      credentials.EnvVars[core.ProviderClaude],
		DocURL:      "https://docs.anthropic.com/en/docs/claude-code",
	}
}

func (p *Provider) IsConfigured() bool {
	return p.resolver.IsConfigured(p.ID())
}

func (p *Provider) Fetch(ctx context.Context, window core.WindowPeriod) core.ProviderResult {
	// The subscription quota rolls over 5-hour and 7-day windows only; a
	// 30-day request falls back to the longest one measured.
	effective := window
	if window == core.WindowDay30 {
		effective = core.WindowDay7
	}

	cred, ok := p.resolver.Resolve(p.ID())
	if !ok {
		return shared.NotConfigured(p.ID(), effective,
			"run 'claude setup-token' or set "+p.Describe().EnvVar)
	}

	body, status, perr := shared.GetJSON(ctx, p.client, p.usageURL, map[string]string{
		"Authorization":  "Bearer " + cred.Token,
		"anthropic-beta": betaHeader,
	})
	if perr != nil {
		return core.ErrorResult(p.ID(), effective, perr)
	}
	if status != http.StatusOK {
		return core.ErrorResult(p.ID(), effective, shared.ClassifyStatus(status, body))
	}

	return core.SuccessResult(p.ID(), effective, normalize(body, effective), body)
}

// normalize reads the utilization block for the effective window. The
// endpoint has spelled the keys both ways across revisions.
func normalize(body []byte, window core.WindowPeriod) core.UsageMetrics {
	blockPaths := []string{"fiveHour", "five_hour"}
	if window == core.WindowDay7 {
		blockPaths = []string{"sevenDay", "seven_day"}
	}

	block := parsers.LookupRaw(body, blockPaths...)
	if block == nil {
		return core.UsageMetrics{}
	}

	return core.UsageMetrics{
		UsagePercent: parsers.LookupNumber(block, "utilization", "usagePercent", "usage_percent"),
		ResetAt:      parsers.LookupTime(block, "resetsAt", "resets_at"),
	}
}
