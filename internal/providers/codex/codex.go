// Package codex reports OpenAI Codex usage through the ChatGPT backend,
// authenticating with the access token the Codex CLI keeps on disk.
package codex

import (
	"context"
	"net/http"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/parsers"
	"github.com/janekbaraniewski/usagetui/internal/providers/shared"
)

const defaultUsageURL = "https://chatgpt.com/backend-api/codex/usage"

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

func (p *Provider) ID() core.ProviderIdentity { return core.ProviderCodex }

func (p *Provider) Describe() core.ProviderInfo {
	return core.ProviderInfo{
		Name:        "OpenAI Codex",
		Description: "OpenAI Codex usage via ChatGPT backend",
		Official:    false,
		Note:        "Reads credentials from ~/.codex/auth.json",
		EnvVar:      credentials.EnvVars[core.ProviderCodex],
		DocURL:      "https://github.com/openai/codex",
	}
}

func (p *Provider) IsConfigured() bool {
	return p.resolver.IsConfigured(p.ID())
}

func (p *Provider) Fetch(ctx context.Context, window core.WindowPeriod) core.ProviderResult {
	// Codex exposes a primary (rolling 5h) and secondary (weekly) limit;
	// 30-day requests fall back to the weekly one.
	effective := window
	if window == core.WindowDay30 {
		effective = core.WindowDay7
	}

	cred, ok := p.resolver.Resolve(p.ID())
	if !ok {
		return shared.NotConfigured(p.ID(), effective,
			"log in with the Codex CLI or set "+p.Describe().EnvVar)
	}

	body, status, perr := shared.GetJSON(ctx, p.client, p.usageURL, map[string]string{
		"Authorization": "Bearer " + cred.Token,
	})
	if perr != nil {
		return core.ErrorResult(p.ID(), effective, perr)
	}
	if status != http.StatusOK {
		return core.ErrorResult(p.ID(), effective, shared.ClassifyStatus(status, body))
	}

	return core.SuccessResult(p.ID(), effective, normalize(body, effective), body)
}

// normalize maps the rate_limit windows onto usage percent and reset time,
// and surfaces a credit balance when the account has one.
func normalize(body []byte, window core.WindowPeriod) core.UsageMetrics {
	windowPaths := []string{"rateLimit.primaryWindow", "rate_limit.primary_window"}
	if window == core.WindowDay7 {
		windowPaths = []string{"rateLimit.secondaryWindow", "rate_limit.secondary_window"}
	}

	var metrics core.UsageMetrics
	if block := parsers.LookupRaw(body, windowPaths...); block != nil {
		metrics.UsagePercent = parsers.LookupNumber(block, "usedPercent", "used_percent")
		metrics.ResetAt = parsers.LookupTime(block, "resetAt", "reset_at")
	}

	metrics.Remaining = parsers.LookupNumber(body,
		"rateLimit.credits.balance", "rate_limit.credits.balance",
		"credits.balance")

	return metrics
}
