package core

import "time"

// UsageMetrics is the canonical cross-provider record. Every field is
// optional: nil means the upstream does not expose that dimension, which is
// different from a value of zero.
type UsageMetrics struct {
	UsagePercent *float64   `json:"usage_percent,omitempty"`
	Remaining    *float64   `json:"remaining,omitempty"`
	Limit        *float64   `json:"limit,omitempty"`
	Cost         *float64   `json:"cost,omitempty"`
	Requests     *int64     `json:"requests,omitempty"`
	InputTokens  *int64     `json:"input_tokens,omitempty"`
	OutputTokens *int64     `json:"output_tokens,omitempty"`
	ResetAt      *time.Time `json:"reset_at,omitempty"`
}

// Percent derives a used-percentage from whichever fields are populated.
// Returns -1 when no percentage can be computed.
func (m UsageMetrics) Percent() float64 {
	if m.UsagePercent != nil {
		return *m.UsagePercent
	}
	if m.Limit != nil && m.Remaining != nil && *m.Limit > 0 {
		return (*m.Limit - *m.Remaining) / *m.Limit * 100
	}
	return -1
}

// Empty reports whether no dimension at all was populated.
func (m UsageMetrics) Empty() bool {
	return m.UsagePercent == nil && m.Remaining == nil && m.Limit == nil &&
		m.Cost == nil && m.Requests == nil &&
		m.InputTokens == nil && m.OutputTokens == nil && m.ResetAt == nil
}

func Float(v float64) *float64 { return &v }

func Int(v int64) *int64 { return &v }
