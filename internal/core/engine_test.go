package core

import (
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// stubProvider lets each test script one provider's behavior.
type stubProvider struct {
	id    ProviderIdentity
	fetch func(ctx context.Context, window WindowPeriod) ProviderResult
}

func (s *stubProvider) ID() ProviderIdentity   { return s.id }
func (s *stubProvider) Describe() ProviderInfo { return ProviderInfo{Name: string(s.id)} }
func (s *stubProvider) IsConfigured() bool     { return true }
func (s *stubProvider) Fetch(ctx context.Context, window WindowPeriod) ProviderResult {
	return s.fetch(ctx, window)
}

func okStub(id ProviderIdentity) *stubProvider {
	return &stubProvider{id: id, fetch: func(_ context.Context, w WindowPeriod) ProviderResult {
		return SuccessResult(id, w, UsageMetrics{UsagePercent: Float(1)}, nil)
	}}
}

func TestFetchAll_CollectsEveryProvider(t *testing.T) {
	providers := []Provider{okStub(ProviderClaude), okStub(ProviderOpenAI), okStub(ProviderCodex)}

	results := FetchAll(context.Background(), providers, WindowHour5)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for _, p := range providers {
		r, ok := results[p.ID()]
		if !ok {
			t.Fatalf("no result for %s", p.ID())
		}
		if r.IsError() {
			t.Fatalf("%s: unexpected error %v", p.ID(), r.Err)
		}
	}
}

func TestFetchAll_RunsConcurrently(t *testing.T) {
	const delay = 50 * time.Millisecond
	var inFlight, peak int64

	slow := func(id ProviderIdentity) *stubProvider {
		return &stubProvider{id: id, fetch: func(_ context.Context, w WindowPeriod) ProviderResult {
			n := atomic.AddInt64(&inFlight, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(delay)
			atomic.AddInt64(&inFlight, -1)
			return SuccessResult(id, w, UsageMetrics{}, nil)
		}}
	}

	start := time.Now()
	FetchAll(context.Background(), []Provider{
		slow(ProviderClaude), slow(ProviderOpenAI), slow(ProviderOpenRouter), slow(ProviderCodex),
	}, WindowHour5)
	elapsed := time.Since(start)

	if got := atomic.LoadInt64(&peak); got < 2 {
		t.Fatalf("peak concurrency = %d, want overlap", got)
	}
	if elapsed > 4*delay {
		t.Fatalf("elapsed = %v, want closer to one provider's latency", elapsed)
	}
}

func TestFetchAll_PanicBecomesErrorResult(t *testing.T) {
	panicking := &stubProvider{id: ProviderCopilot, fetch: func(context.Context, WindowPeriod) ProviderResult {
		panic("nil map write")
	}}

	results := FetchAll(context.Background(), []Provider{panicking, okStub(ProviderClaude)}, WindowHour5)

	r := results[ProviderCopilot]
	if !r.IsError() {
		t.Fatal("panicking provider did not yield an error result")
	}
	if r.Err.Kind != ErrUnexpected {
		t.Fatalf("Kind = %v, want %v", r.Err.Kind, ErrUnexpected)
	}
	if !strings.Contains(r.Err.Message, "nil map write") {
		t.Fatalf("Message = %q, want panic value preserved", r.Err.Message)
	}
	// The healthy provider is unaffected.
	if results[ProviderClaude].IsError() {
		t.Fatal("healthy provider failed alongside the panicking one")
	}
}

func TestFetchWindows_PreservesOrder(t *testing.T) {
	p := okStub(ProviderClaude)
	windows := []WindowPeriod{WindowHour5, WindowDay7}

	results := FetchWindows(context.Background(), p, windows)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for i, w := range windows {
		if results[i].Window != w {
			t.Fatalf("results[%d].Window = %v, want %v", i, results[i].Window, w)
		}
	}
}

func TestRequireProvider(t *testing.T) {
	providers := []Provider{okStub(ProviderClaude), okStub(ProviderCodex)}

	p, err := RequireProvider(providers, ProviderCodex)
	if err != nil {
		t.Fatalf("RequireProvider() error = %v", err)
	}
	if p.ID() != ProviderCodex {
		t.Fatalf("ID = %v, want codex", p.ID())
	}

	if _, err := RequireProvider(providers, ProviderCopilot); err == nil {
		t.Fatal("RequireProvider() found an unregistered provider")
	}
}

// Compile-time check that the login surface stays an extension of Provider.
var _ LoginProvider = (*loginStub)(nil)

type loginStub struct{ stubProvider }

func (s *loginStub) Login(context.Context, io.Writer) (Credential, error) {
	return Credential{}, nil
}
