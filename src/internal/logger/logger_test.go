package logger

import "testing"

func TestSanitizePayloadMasksSessionToken(t *testing.T) {
	payload := map[string]any{
		"registerId":   7,
		"sessionToken": "eyJhbGciOi",
		"nested": map[string]any{
			"X-Register-Session": "abc",
			"concept":            "Apertura",
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatal("expected sanitized payload to be a map")
	}
	if sanitized["sessionToken"] != "******" {
		t.Fatalf("expected sessionToken to be masked, got %v", sanitized["sessionToken"])
	}

	nested, ok := sanitized["nested"].(map[string]any)
	if !ok {
		t.Fatal("expected nested map to be preserved")
	}
	if nested["X-Register-Session"] != "******" {
		t.Fatalf("expected header value to be masked, got %v", nested["X-Register-Session"])
	}
	if nested["concept"] != "Apertura" {
		t.Fatalf("expected concept to be kept, got %v", nested["concept"])
	}
}

func TestSanitizePayloadUnmarshalableValue(t *testing.T) {
	if got := SanitizePayload(make(chan int)); got != "<unavailable>" {
		t.Fatalf("expected <unavailable>, got %v", got)
	}
}

func TestSanitizePayloadKeepsDocumentTail(t *testing.T) {
	sanitized, ok := SanitizePayload(map[string]any{
		"clientDocument": "4567890",
		"accountNumber":  "12",
		"amount":         "300000",
	}).(map[string]any)
	if !ok {
		t.Fatal("expected sanitized payload to be a map")
	}
	if sanitized["clientDocument"] != "****890" {
		t.Fatalf("expected ****890, got %v", sanitized["clientDocument"])
	}
	if sanitized["accountNumber"] != "**" {
		t.Fatalf("expected **, got %v", sanitized["accountNumber"])
	}
	if sanitized["amount"] != "300000" {
		t.Fatalf("expected amount to be kept, got %v", sanitized["amount"])
	}
}
