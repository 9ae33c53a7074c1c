package copilot

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/janekbaraniewski/usagetui/internal/core"
	"github.com/janekbaraniewski/usagetui/internal/credentials"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("USAGETUI_CONFIG_DIR", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func testProvider(t *testing.T, usageURL string) *Provider {
	t.Helper()
	p := New(credentials.NewResolver())
	if usageURL != "" {
		p.usageURL = usageURL
	}
	return p
}

type countingTransport struct {
	calls int64
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.next.RoundTrip(req)
}

func TestIsConfigured_NoNetworkCalls(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	counter := &countingTransport{next: http.DefaultTransport}
	p := testProvider(t, "")
	p.client = &http.Client{Transport: counter}

	if !p.IsConfigured() {
		t.Fatal("IsConfigured = false, want true")
	}
	if got := atomic.LoadInt64(&counter.calls); got != 0 {
		t.Fatalf("network calls during IsConfigured = %d, want 0", got)
	}
}

func TestFetch_NotConfigured_ReturnsErrorResult(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "")

	p := testProvider(t, "")
	result := p.Fetch(context.Background(), core.WindowDay7)

	if !result.IsError() {
		t.Fatal("Fetch() returned success without a credential")
	}
	if result.Err.Kind != core.ErrNotConfigured {
		t.Fatalf("Kind = %v, want %v", result.Err.Kind, core.ErrNotConfigured)
	}
	if !strings.Contains(result.Err.Message, "login") {
		t.Fatalf("Message = %q, want configuration hint", result.Err.Message)
	}
}

func TestFetch_SubstitutesFixedWindow(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "token gh-token" {
			t.Errorf("Authorization = %q, want token scheme", got)
		}
		if r.Header.Get("Editor-Version") == "" {
			t.Error("Editor-Version header missing")
		}
		fmt.Fprint(w, `{"quotaSnapshots":{"chat":{"percentRemaining":90}}}`)
	}))
	defer server.Close()

	p := testProvider(t, server.URL)

	// Copilot measures a fixed 30-day quota; a 5h request is substituted.
	result := p.Fetch(context.Background(), core.WindowHour5)
	if result.IsError() {
		t.Fatalf("Fetch() error = %v", result.Err)
	}
	if result.Window != core.WindowDay30 {
		t.Fatalf("Window = %v, want %v", result.Window, core.WindowDay30)
	}
}

func TestFetch_AbsoluteQuotaPreferred(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"quotaSnapshots":{"premiumInteractions":{"percentRemaining":10.8,"entitlement":1500,"quota_remaining":162}}}`)
	}))
	defer server.Close()

	result := testProvider(t, server.URL).Fetch(context.Background(), core.WindowDay30)
	if result.IsError() {
		t.Fatalf("Fetch() error = %v", result.Err)
	}
	if result.Metrics.Remaining == nil || *result.Metrics.Remaining != 162 {
		t.Fatalf("Remaining = %v, want 162", result.Metrics.Remaining)
	}
	if result.Metrics.Limit == nil || *result.Metrics.Limit != 1500 {
		t.Fatalf("Limit = %v, want 1500", result.Metrics.Limit)
	}
}

func TestFetch_PercentOnlySnapshot(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"quotaSnapshots":{"chat":{"percentRemaining":90}}}`)
	}))
	defer server.Close()

	result := testProvider(t, server.URL).Fetch(context.Background(), core.WindowDay30)
	if result.IsError() {
		t.Fatalf("Fetch() error = %v", result.Err)
	}
	if result.Metrics.Remaining == nil || *result.Metrics.Remaining != 90 {
		t.Fatalf("Remaining = %v, want 90", result.Metrics.Remaining)
	}
	if result.Metrics.Limit == nil || *result.Metrics.Limit != 100 {
		t.Fatalf("Limit = %v, want 100", result.Metrics.Limit)
	}
}

func TestFetch_SnakeCaseSnapshots(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"quota_snapshots":{"premium_interactions":{"entitlement":300,"remaining":250}},"quota_reset_date_utc":"2025-02-01T00:00:00Z"}`)
	}))
	defer server.Close()

	result := testProvider(t, server.URL).Fetch(context.Background(), core.WindowDay30)
	if result.IsError() {
		t.Fatalf("Fetch() error = %v", result.Err)
	}
	if result.Metrics.Remaining == nil || *result.Metrics.Remaining != 250 {
		t.Fatalf("Remaining = %v, want 250", result.Metrics.Remaining)
	}
	if result.Metrics.ResetAt == nil {
		t.Fatal("ResetAt = nil, want parsed reset date")
	}
}

func TestFetch_UnauthorizedMapsToAuthError(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "bad-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	result := testProvider(t, server.URL).Fetch(context.Background(), core.WindowDay7)
	if !result.IsError() {
		t.Fatal("Fetch() returned success on 401")
	}
	if result.Err.Kind != core.ErrAuth {
		t.Fatalf("Kind = %v, want %v", result.Err.Kind, core.ErrAuth)
	}
}

func TestFetch_NotFoundMeansCopilotDisabled(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result := testProvider(t, server.URL).Fetch(context.Background(), core.WindowDay7)
	if !result.IsError() {
		t.Fatal("Fetch() returned success on 404")
	}
	if !strings.Contains(result.Err.Message, "not enabled") {
		t.Fatalf("Message = %q, want not-enabled hint", result.Err.Message)
	}
}

func TestFetch_RawPayloadPreserved(t *testing.T) {
	isolate(t)
	t.Setenv("GITHUB_TOKEN", "gh-token")

	payload := `{"quotaSnapshots":{"chat":{"percentRemaining":50}},"copilotPlan":"pro"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	result := testProvider(t, server.URL).Fetch(context.Background(), core.WindowDay30)
	if string(result.Raw) != payload {
		t.Fatalf("Raw = %s, want verbatim payload", result.Raw)
	}
}

func TestLogin_DeviceFlowEndToEnd(t *testing.T) {
	isolate(t)

	deviceServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"device_code":"dc-1","user_code":"WXYZ-9876","verification_uri":"https://github.com/login/device","interval":1}`)
	}))
	defer deviceServer.Close()

	var polls int64
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt64(&polls, 1) == 1 {
			fmt.Fprint(w, `{"error":"authorization_pending"}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"gho_new"}`)
	}))
	defer tokenServer.Close()

	storePath := filepath.Join(t.TempDir(), "copilot.json")
	p := testProvider(t, "")
	p.deviceCodeURL = deviceServer.URL
	p.tokenURL = tokenServer.URL
	p.store = credentials.NewStoreAt(storePath)

	var out bytes.Buffer
	cred, err := p.Login(context.Background(), &out)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if cred.Token != "gho_new" {
		t.Fatalf("Token = %q, want gho_new", cred.Token)
	}

	// The human-facing half must be surfaced before polling blocks.
	display := out.String()
	if !strings.Contains(display, "WXYZ-9876") {
		t.Fatalf("output %q missing user code", display)
	}
	if !strings.Contains(display, "https://github.com/login/device") {
		t.Fatalf("output %q missing verification URI", display)
	}

	// Token persisted by the flow, not just returned.
	saved, ok := credentials.NewStoreAt(storePath).Load()
	if !ok || saved.Token != "gho_new" {
		t.Fatalf("store = (%q, %v), want persisted token", saved.Token, ok)
	}
}
