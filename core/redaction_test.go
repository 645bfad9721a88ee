package core

import "testing"

func TestRedactSensitiveMap(t *testing.T) {
	source := map[string]any{
		"api_key":        "AQEyhmfxK4nKaxxDw0m",
		"hmac_signature": "c2lnbmF0dXJl",
		"authorization":  "Basic dXNlcjpwYXNz",
		"psp_reference":  "8515131751004933",
		"event_code":     "AUTHORISATION",
		"nested": map[string]any{
			"password": "hunter2",
			"amount":   1000,
		},
		"items": []any{
			map[string]any{"card_number": "4111111111111111", "currency": "EUR"},
		},
	}

	redacted := RedactSensitiveMap(source)

	for _, key := range []string{"api_key", "hmac_signature", "authorization"} {
		if redacted[key] != RedactedValue {
			t.Fatalf("%s = %v, want %q", key, redacted[key], RedactedValue)
		}
	}
	if redacted["psp_reference"] != "8515131751004933" {
		t.Fatalf("traceability key redacted: %v", redacted["psp_reference"])
	}
	nested := redacted["nested"].(map[string]any)
	if nested["password"] != RedactedValue {
		t.Fatalf("nested password survived: %v", nested["password"])
	}
	if nested["amount"] != 1000 {
		t.Fatalf("nested non-sensitive value changed: %v", nested["amount"])
	}
	item := redacted["items"].([]any)[0].(map[string]any)
	if item["card_number"] != RedactedValue {
		t.Fatalf("card number survived inside slice: %v", item["card_number"])
	}
	if item["currency"] != "EUR" {
		t.Fatalf("currency changed: %v", item["currency"])
	}

	if source["api_key"] == RedactedValue {
		t.Fatalf("source map mutated")
	}
}

func TestRedactSensitiveMapEmpty(t *testing.T) {
	if got := RedactSensitiveMap(nil); got == nil || len(got) != 0 {
		t.Fatalf("RedactSensitiveMap(nil) = %v, want empty map", got)
	}
}
