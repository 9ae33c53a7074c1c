package core

import (
	"context"
	"fmt"
	"sync"
)

// FetchAll queries every provider concurrently and joins the results, so
// total wall-clock time is bounded by the slowest upstream. A provider that
// panics or otherwise escapes its own error handling is converted into an
// error-tagged result at this boundary.
func FetchAll(ctx context.Context, providers []Provider, window WindowPeriod) map[ProviderIdentity]ProviderResult {
	results := make(chan ProviderResult, len(providers))

	var wg sync.WaitGroup
	for _, p := range providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			results <- fetchOne(ctx, p, window)
		}(p)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make(map[ProviderIdentity]ProviderResult, len(providers))
	for r := range results {
		out[r.Provider] = r
	}
	return out
}

func fetchOne(ctx context.Context, p Provider, window WindowPeriod) (result ProviderResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ErrorResult(p.ID(), window,
				NewProviderError(ErrUnexpected, "unexpected error: %v", rec))
		}
	}()
	return p.Fetch(ctx, window)
}

// FetchWindows runs one provider over several windows sequentially,
// preserving window order in the returned slice.
func FetchWindows(ctx context.Context, p Provider, windows []WindowPeriod) []ProviderResult {
	out := make([]ProviderResult, 0, len(windows))
	for _, w := range windows {
		out = append(out, fetchOne(ctx, p, w))
	}
	return out
}

// RequireProvider returns the provider with the given identity or an error
// naming the miss. Registry lookups funnel through this so messages stay
// consistent.
func RequireProvider(providers []Provider, id ProviderIdentity) (Provider, error) {
	for _, p := range providers {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no provider registered for %q", id)
}
