// Package copilot reports GitHub Copilot quota via the internal user
// endpoint the VS Code extension uses, and authenticates through the
// GitHub OAuth device-code flow with the VS Code client ID.
//
// Copilot measures one fixed 30-day quota window. The requested window is
// therefore substituted, and the result always carries the 30-day label.
package copilot

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
	"github.com/janekbaraniewski/usagetui/internal/deviceflow"
	"github.com/janekbaraniewski/usagetui/internal/parsers"
	"github.com/janekbaraniewski/usagetui/internal/providers/shared"
)

const (
	defaultUsageURL = "https://api.github.com/copilot_internal/user"

	// VS Code's public client ID for Copilot.
	clientID = "Iv1.b507a08c87ecfe98"
	scope    = "read:user"

	deviceCodeURL = "https://github.com/login/device/code"
	tokenURL      = "https://github.com/login/oauth/access_token"

	// Headers mimicking the VS Code Copilot extension; the internal
	// endpoint rejects unrecognized clients.
	editorVersion = "vscode/1.96.2"
	pluginVersion = "copilot-chat/0.26.7"
	userAgent     = "GitHubCopilotChat/0.26.7"
	apiVersion    = "2025-04-01"
)

type Provider struct {
	resolver *credentials.Resolver
	store    *credentials.Store
	client   *http.Client

	usageURL      string
	deviceCodeURL string
	tokenURL      string
}

func New(resolver *credentials.Resolver) *Provider {
	return &Provider{
		resolver:      resolver,
		store:         credentials.NewStore(core.ProviderCopilot),
		client:        shared.NewHTTPClient(),
		usageURL:      defaultUsageURL,
		deviceCodeURL: deviceCodeURL,
		tokenURL:      tokenURL,
	}
}

func (p *Provider) ID() core.ProviderIdentity { return core.ProviderCopilot }

func (p *Provider) Describe() core.ProviderInfo {
	return core.ProviderInfo{
		Name:        "GitHub Copilot",
		Description: "GitHub Copilot quota via internal API",
		Official:    false,
		Note:        "Uses VS Code client ID for device flow auth",
		EnvVar:      credentials.EnvVars[core.ProviderCopilot],
		DocURL:      "https://docs.github.com/en/copilot",
	}
}

func (p *Provider) IsConfigured() bool {
	return p.resolver.IsConfigured(p.ID())
}

func (p *Provider) Fetch(ctx context.Context, _ core.WindowPeriod) core.ProviderResult {
	// Upstream has no notion of the requested window; report the one it
	// actually measures.
	window := core.WindowDay30

	cred, ok := p.resolver.Resolve(p.ID())
	if !ok {
		return shared.NotConfigured(p.ID(), window, "run 'usagetui login -p copilot'")
	}

	body, status, perr := shared.GetJSON(ctx, p.client, p.usageURL, map[string]string{
		"Authorization":         "token " + cred.Token,
		"Editor-Version":        editorVersion,
		"Editor-Plugin-Version": pluginVersion,
		"User-Agent":            userAgent,
		"X-Github-Api-Version":  apiVersion,
	})
	if perr != nil {
		return core.ErrorResult(p.ID(), window, perr)
	}

	switch status {
	case http.StatusOK:
		return core.SuccessResult(p.ID(), window, normalize(body), body)
	case http.StatusUnauthorized, http.StatusForbidden:
		return core.ErrorResult(p.ID(), window, core.NewProviderError(core.ErrAuth,
			"GitHub token invalid or lacks Copilot access, run 'usagetui login -p copilot'"))
	case http.StatusNotFound:
		return core.ErrorResult(p.ID(), window,
			core.NewProviderError(core.ErrUnexpected, "Copilot not enabled for this account"))
	default:
		return core.ErrorResult(p.ID(), window, shared.ClassifyStatus(status, body))
	}
}

// snapshotKeys lists the quota snapshots in priority order; the first one
// with usable numbers wins.
var snapshotKeys = [][]string{
	{"premiumInteractions", "premium_interactions"},
	{"chat"},
	{"completions"},
}

// normalize extracts remaining/limit from the quotaSnapshots object,
// preferring absolute entitlement figures over bare percentages, plus the
// quota reset date under its four known spellings.
func normalize(body []byte) core.UsageMetrics {
	var metrics core.UsageMetrics

	for _, keys := range snapshotKeys {
		snapshot := lookupSnapshot(body, keys)
		if snapshot == nil {
			continue
		}
		remaining, limit := parsers.QuotaPair(snapshot)
		if remaining != nil {
			metrics.Remaining = remaining
			metrics.Limit = limit
			break
		}
	}

	metrics.ResetAt = parsers.LookupTime(body,
		"quotaResetDateUtc", "quota_reset_date_utc",
		"quotaResetDate", "quota_reset_date")

	return metrics
}

func lookupSnapshot(body []byte, keys []string) []byte {
	for _, key := range keys {
		for _, container := range []string{"quotaSnapshots", "quota_snapshots"} {
			if raw := parsers.LookupRaw(body, container+"."+key); raw != nil {
				return raw
			}
		}
	}
	return nil
}

// Login drives the GitHub device flow end to end. The user code and
// verification URI are written to out before polling starts; the token is
// persisted to the store before being returned.
func (p *Provider) Login(ctx context.Context, out io.Writer) (core.Credential, error) {
	flow := deviceflow.New(deviceflow.Config{
		ClientID:      clientID,
		Scope:         scope,
		DeviceCodeURL: p.deviceCodeURL,
		TokenURL:      p.tokenURL,
		HTTPClient:    p.client,
		Persist: func(token string) error {
			return p.store.Save(core.Credential{Token: token, Source: core.SourceStore})
		},
	})

	session, err := flow.RequestCode(ctx)
	if err != nil {
		return core.Credential{}, fmt.Errorf("copilot login: %w", err)
	}

	fmt.Fprintf(out, "To authorize GitHub Copilot access:\n")
	fmt.Fprintf(out, "  1. Open: %s\n", session.VerificationURI)
	fmt.Fprintf(out, "  2. Enter code: %s\n", session.UserCode)
	fmt.Fprintf(out, "\nWaiting for authorization...\n")

	token, err := flow.PollToken(ctx, session)
	if err != nil {
		return core.Credential{}, fmt.Errorf("copilot login: %w", err)
	}

	return core.Credential{Token: token, Source: core.SourceStore}, nil
}
