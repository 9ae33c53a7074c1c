// Package shared holds the HTTP plumbing common to every provider: one
// 30-second-timeout client and the mapping of expected upstream status
// codes into the error taxonomy. Keeping the mapping here means every
// provider classifies 401/402/429 the same way.
package shared

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/janekbaraniewski/usagetui/internal/core"
)

const requestTimeout = 30 * time.Second

// NewHTTPClient returns the standard provider client.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// maxErrorBody caps how much of an error response lands in diagnostics.
const maxErrorBody = 512

// GetJSON performs one GET with the given headers and returns the body and
// status. Transport failures come back classified as timeout vs network.
func GetJSON(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, int, *core.ProviderError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, core.NewProviderError(core.ErrUnexpected, "creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, core.ClassifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, core.NewProviderError(core.ErrNetwork, "reading response: %v", err)
	}
	return body, resp.StatusCode, nil
}

// ClassifyStatus maps a non-200 status into the error taxonomy, preserving
// the raw status code and a body excerpt for diagnostics.
func ClassifyStatus(status int, body []byte) *core.ProviderError {
	var perr *core.ProviderError
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		perr = core.NewProviderError(core.ErrAuth, "credential rejected (HTTP %d)", status)
	case http.StatusPaymentRequired:
		perr = core.NewProviderError(core.ErrPaymentRequired, "payment required (negative balance, add credits)")
	case http.StatusTooManyRequests:
		perr = core.NewProviderError(core.ErrRateLimited, "rate limited, try again later")
	default:
		perr = core.NewProviderError(core.ErrUnexpected, "API error: HTTP %d", status)
	}
	perr.Raw = map[string]string{"status_code": strconv.Itoa(status)}
	if len(body) > 0 {
		excerpt := string(body)
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		perr.Raw["body"] = excerpt
	}
	return perr
}

// NotConfigured builds the standard not-configured result, naming the
// environment variable or login command that would fix it.
func NotConfigured(id core.ProviderIdentity, window core.WindowPeriod, hint string) core.ProviderResult {
	return core.ErrorResult(id, window,
		core.NewProviderError(core.ErrNotConfigured, "not configured: %s", hint))
}

// FormatEnvHint is the usual hint for key-only providers.
func FormatEnvHint(envVar string) string {
	return fmt.Sprintf("set the %s environment variable", envVar)
}
