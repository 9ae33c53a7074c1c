package core

import "encoding/json"

// ProviderResult is the outcome of one fetch: either metrics or an error,
// never both. Raw keeps the upstream payload verbatim for auditing.
type ProviderResult struct {
	Provider ProviderIdentity `json:"provider"`
	Window   WindowPeriod     `json:"window"`
	Metrics  *UsageMetrics    `json:"metrics,omitempty"`
	Raw      json.RawMessage  `json:"raw,omitempty"`
	Err      *ProviderError   `json:"-"`
}

// IsError reports whether the result carries an error instead of metrics.
func (r ProviderResult) IsError() bool { return r.Err != nil }

// SuccessResult builds the success arm of the union.
func SuccessResult(provider ProviderIdentity, window WindowPeriod, metrics UsageMetrics, raw []byte) ProviderResult {
	return ProviderResult{
		Provider: provider,
		Window:   window,
		Metrics:  &metrics,
		Raw:      json.RawMessage(raw),
	}
}

// ErrorResult builds the error arm of the union.
func ErrorResult(provider ProviderIdentity, window WindowPeriod, err *ProviderError) ProviderResult {
	return ProviderResult{Provider: provider, Window: window, Err: err}
}

// MarshalJSON flattens the error arm into a plain string field so --json
// output stays stable for scripting.
func (r ProviderResult) MarshalJSON() ([]byte, error) {
	type successShape struct {
		Provider ProviderIdentity `json:"provider"`
		Window   WindowPeriod     `json:"window"`
		Metrics  *UsageMetrics    `json:"metrics,omitempty"`
		Raw      json.RawMessage  `json:"raw,omitempty"`
	}
	type errorShape struct {
		Provider ProviderIdentity  `json:"provider"`
		Window   WindowPeriod      `json:"window"`
		Error    string            `json:"error"`
		Kind     ErrorKind         `json:"error_kind"`
		Detail   map[string]string `json:"error_detail,omitempty"`
	}
	if r.Err != nil {
		return json.Marshal(errorShape{
			Provider: r.Provider,
			Window:   r.Window,
			Error:    r.Err.Message,
			Kind:     r.Err.Kind,
			Detail:   r.Err.Raw,
		})
	}
	return json.Marshal(successShape{
		Provider: r.Provider,
		Window:   r.Window,
		Metrics:  r.Metrics,
		Raw:      r.Raw,
	})
}
