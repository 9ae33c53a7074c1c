// Package openrouter reports OpenRouter API-key credits and limits via the
// documented GET /api/v1/key endpoint.
package openrouter

import (
	"context"
	"net/http"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/parsers"
	"github.com/janekbaraniewski/usagetui/internal/providers/shared"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

type Provider struct {
	resolver *credentials.Resolver
	baseURL  string
	client   *http.Client
}

func New(resolver *credentials.Resolver) *Provider {
	return &Provider{
		resolver: resolver,
		baseURL:  defaultBaseURL,
		client:   shared.NewHTTPClient(),
	}
}

func (p *Provider) ID() core.ProviderIdentity { return core.ProviderOpenRouter }

func (p *Provider) Describe() core.ProviderInfo {
	return core.ProviderInfo{
		Name:        "OpenRouter",
		Description: "OpenRouter API credits and usage",
		Official:    true,
		Note:        "Uses /api/v1/key for credits and limits",
		EnvVar:      credentials.EnvVars[core.ProviderOpenRouter],
		DocURL:      "https://openrouter.ai/docs/api-reference/api-keys/get-current-key",
	}
}

func (p *Provider) IsConfigured() bool {
	return p.resolver.IsConfigured(p.ID())
}

func (p *Provider) Fetch(ctx context.Context, window core.WindowPeriod) core.ProviderResult {
	cred, ok := p.resolver.Resolve(p.ID())
	if !ok {
		return shared.NotConfigured(p.ID(), window, shared.FormatEnvHint(p.Describe().EnvVar))
	}

	body, status, perr := shared.GetJSON(ctx, p.client, p.baseURL+"/key", map[string]string{
		"Authorization": "Bearer " + cred.Token,
		"User-Agent":    "usagetui",
	})
	if perr != nil {
		return core.ErrorResult(p.ID(), window, perr)
	}
	if status != http.StatusOK {
		return core.ErrorResult(p.ID(), window, shared.ClassifyStatus(status, body))
	}

	return core.SuccessResult(p.ID(), window, normalize(body, window), body)
}

// normalize maps the key payload onto canonical metrics. Cost comes from
// the usage bucket matching the requested window; remaining/limit reflect
// the key's credit ceiling when one is set.
func normalize(body []byte, window core.WindowPeriod) core.UsageMetrics {
	metrics := core.UsageMetrics{
		Remaining: parsers.LookupNumber(body, "data.limitRemaining", "data.limit_remaining"),
		Limit:     parsers.LookupNumber(body, "data.limit"),
	}

	var costPaths []string
	switch window {
	case core.WindowHour5:
		costPaths = []string{"data.usageDaily", "data.usage_daily"}
	case core.WindowDay30:
		costPaths = []string{"data.usageMonthly", "data.usage_monthly"}
	default:
		costPaths = []string{"data.usageWeekly", "data.usage_weekly"}
	}
	if cost := parsers.LookupNumber(body, costPaths...); cost != nil {
		metrics.Cost = cost
	} else {
		metrics.Cost = core.Float(0)
	}

	return metrics
}
