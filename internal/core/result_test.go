package core

import (
	"encoding/json"
	"testing"
)

func TestMarshalJSON_SuccessArm(t *testing.T) {
	raw := []byte(`{"fiveHour":{"utilization":42}}`)
	result := SuccessResult(ProviderClaude, WindowHour5, UsageMetrics{UsagePercent: Float(42)}, raw)

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["error"]; ok {
		t.Fatal("success result serialized an error field")
	}
	if string(decoded["provider"]) != `"claude"` {
		t.Fatalf("provider = %s", decoded["provider"])
	}
	if string(decoded["raw"]) != string(raw) {
		t.Fatalf("raw = %s, want verbatim upstream payload", decoded["raw"])
	}
}

func TestMarshalJSON_ErrorArm(t *testing.T) {
	perr := NewProviderError(ErrRateLimited, "HTTP 429")
	perr.Raw = map[string]string{"status_code": "429"}
	result := ErrorResult(ProviderOpenRouter, WindowDay7, perr)

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Provider string            `json:"provider"`
		Error    string            `json:"error"`
		Kind     string            `json:"error_kind"`
		Detail   map[string]string `json:"error_detail"`
		Metrics  *UsageMetrics     `json:"metrics"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Error != "HTTP 429" || decoded.Kind != string(ErrRateLimited) {
		t.Fatalf("error arm = %+v", decoded)
	}
	if decoded.Detail["status_code"] != "429" {
		t.Fatalf("detail = %v, want status_code preserved", decoded.Detail)
	}
	if decoded.Metrics != nil {
		t.Fatal("error result serialized metrics")
	}
}

func TestResultUnion(t *testing.T) {
	success := SuccessResult(ProviderCodex, WindowHour5, UsageMetrics{}, nil)
	if success.IsError() {
		t.Fatal("success result reports IsError")
	}
	if success.Metrics == nil {
		t.Fatal("success result has nil metrics")
	}

	failure := ErrorResult(ProviderCodex, WindowHour5, NewProviderError(ErrNetwork, "dial failed"))
	if !failure.IsError() {
		t.Fatal("error result does not report IsError")
	}
	if failure.Metrics != nil {
		t.Fatal("error result carries metrics")
	}
}
