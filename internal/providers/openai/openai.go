// Package openai reports API usage through the organization usage
// endpoint, which needs an admin-scoped key. Figures are aggregated across
// the returned time buckets for the requested window.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/providers/shared"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Provider struct {
	resolver *credentials.Resolver
	baseURL  string
	client   *http.Client
	now      func() time.Time
}

func New(resolver *credentials.Resolver) *Provider {
	return &Provider{
		resolver: resolver,
		baseURL:  defaultBaseURL,
		client:   shared.NewHTTPClient(),
		now:      time.Now,
	}
}

func (p *Provider) ID() core.ProviderIdentity { return core.ProviderOpenAI }

func (p *Provider) Describe() core.ProviderInfo {
	return core.ProviderInfo{
		Name:        "OpenAI",
		Description: "OpenAI API usage and costs",
		Official:    true,
		Note:        "Requires organization admin API key",
		EnvVar:      credentials.EnvVars[core.ProviderOpenAI],
		DocURL:      "https://platform.openai.com/docs/api-reference/usage",
	}
}

func (p *Provider) IsConfigured() bool {
	return p.resolver.IsConfigured(p.ID())
}

func windowSpan(window core.WindowPeriod) time.Duration {
	switch window {
	case core.WindowHour5:
		return 5 * time.Hour
	case core.WindowDay30:
		return 30 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

func (p *Provider) Fetch(ctx context.Context, window core.WindowPeriod) core.ProviderResult {
	cred, ok := p.resolver.Resolve(p.ID())
	if !ok {
		return shared.NotConfigured(p.ID(), window, shared.FormatEnvHint(p.Describe().EnvVar))
	}

	start := p.now().Add(-windowSpan(window)).Unix()
	url := fmt.Sprintf("%s/organization/usage/completions?start_time=%d&limit=31", p.baseURL, start)

	body, status, perr := shared.GetJSON(ctx, p.client, url, map[string]string{
		"Authorization": "Bearer " + cred.Token,
	})
	if perr != nil {
		return core.ErrorResult(p.ID(), window, perr)
	}
	if status != http.StatusOK {
		return core.ErrorResult(p.ID(), window, shared.ClassifyStatus(status, body))
	}

	return core.SuccessResult(p.ID(), window, normalize(body), body)
}

// normalize sums requests and token counts across every bucket's result
// lines. Buckets with no results contribute nothing; a response with no
// buckets at all yields empty metrics, not zeros.
func normalize(body []byte) core.UsageMetrics {
	var (
		requests, inputTokens, outputTokens int64
		sawResult                           bool
	)

	gjson.GetBytes(body, "data").ForEach(func(_, bucket gjson.Result) bool {
		bucket.Get("results").ForEach(func(_, line gjson.Result) bool {
			sawResult = true
			requests += firstInt(line, "numModelRequests", "num_model_requests")
			inputTokens += firstInt(line, "inputTokens", "input_tokens")
			outputTokens += firstInt(line, "outputTokens", "output_tokens")
			return true
		})
		return true
	})

	if !sawResult {
		return core.UsageMetrics{}
	}
	return core.UsageMetrics{
		Requests:     core.Int(requests),
		InputTokens:  core.Int(inputTokens),
		OutputTokens: core.Int(outputTokens),
	}
}

func firstInt(line gjson.Result, paths ...string) int64 {
	for _, path := range paths {
		if v := line.Get(path); v.Type == gjson.Number {
			return v.Int()
		}
	}
	return 0
}
