package webhooks

import (
	"encoding/base64"
	"testing"

	"github.com/goliatone/go-adyen/core"
)

const testHMACKey = "44782DEF547AAA06C910C43932B1EB0C71FC68D9D0C057550C48EC2ACF6BA056"

func testItem() NotificationRequestItem {
	return NotificationRequestItem{
		Amount:              core.NewAmount(1000, core.CurrencyEUR),
		EventCode:           EventCodeAuthorisation,
		MerchantAccountCode: "TestMerchant",
		MerchantReference:   "test-payment-123",
		PaymentMethod:       "visa",
		PSPReference:        "8515131751004933",
		Success:             "true",
	}
}

func TestNewHMACValidatorRejectsBadKeys(t *testing.T) {
	_, err := NewHMACValidator("")
	if err == nil {
		t.Fatalf("empty key accepted")
	}
	if !core.IsValidationError(err) {
		t.Fatalf("empty key error = %v, want validation category", err)
	}

	_, err = NewHMACValidator("not_hex_at_all")
	if err == nil {
		t.Fatalf("non-hex key accepted")
	}
	if !core.IsValidationError(err) {
		t.Fatalf("non-hex key error = %v, want validation category", err)
	}
}

func TestNotificationDataToSign(t *testing.T) {
	item := testItem()
	item.OriginalReference = "original-123"
	want := "8515131751004933:original-123:TestMerchant:test-payment-123:1000:EUR:AUTHORISATION:true"
	if got := notificationDataToSign(item); got != want {
		t.Fatalf("data to sign = %q, want %q", got, want)
	}
}

func TestEscapeData(t *testing.T) {
	got := escapeData(`test\data:with:special\chars`)
	want := `test\\data\:with\:special\\chars`
	if got != want {
		t.Fatalf("escapeData = %q, want %q", got, want)
	}
}

func TestCalculateNotificationSignature(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	signature, err := validator.CalculateNotificationSignature(testItem())
	if err != nil {
		t.Fatalf("CalculateNotificationSignature: %v", err)
	}
	if _, err := base64.StdEncoding.DecodeString(signature); err != nil {
		t.Fatalf("signature is not valid base64: %q", signature)
	}
	again, err := validator.CalculateNotificationSignature(testItem())
	if err != nil {
		t.Fatalf("CalculateNotificationSignature: %v", err)
	}
	if signature != again {
		t.Fatalf("signature is not deterministic: %q vs %q", signature, again)
	}
}

func TestValidateNotificationRoundTrip(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	signature, err := validator.CalculateNotificationSignature(testItem())
	if err != nil {
		t.Fatalf("CalculateNotificationSignature: %v", err)
	}

	item := testItem()
	item.AdditionalData = map[string]any{HMACSignatureKey: signature}
	if !validator.ValidateNotification(item) {
		t.Fatalf("valid signature rejected")
	}
}

func TestValidateNotificationRejectsTamperedSignature(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	signature, err := validator.CalculateNotificationSignature(testItem())
	if err != nil {
		t.Fatalf("CalculateNotificationSignature: %v", err)
	}

	flipped := []byte(signature)
	if flipped[0] == 'A' {
		flipped[0] = 'B'
	} else {
		flipped[0] = 'A'
	}
	item := testItem()
	item.AdditionalData = map[string]any{HMACSignatureKey: string(flipped)}
	if validator.ValidateNotification(item) {
		t.Fatalf("tampered signature accepted")
	}
}

func TestValidateNotificationRejectsTamperedFields(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	signature, err := validator.CalculateNotificationSignature(testItem())
	if err != nil {
		t.Fatalf("CalculateNotificationSignature: %v", err)
	}

	item := testItem()
	item.Amount = core.NewAmount(100000, core.CurrencyEUR)
	item.AdditionalData = map[string]any{HMACSignatureKey: signature}
	if validator.ValidateNotification(item) {
		t.Fatalf("signature accepted after amount tampering")
	}
}

func TestValidateNotificationMissingSignature(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	if validator.ValidateNotification(testItem()) {
		t.Fatalf("item without signature accepted")
	}
}

func TestValidatePayload(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	payload := []byte(`{"test": "data"}`)
	signature, err := validator.CalculatePayloadSignature(payload)
	if err != nil {
		t.Fatalf("CalculatePayloadSignature: %v", err)
	}
	if !validator.ValidatePayload(payload, signature) {
		t.Fatalf("valid payload signature rejected")
	}
	if validator.ValidatePayload(payload, "invalid_signature") {
		t.Fatalf("invalid payload signature accepted")
	}
	if validator.ValidatePayload([]byte(`{"test": "other"}`), signature) {
		t.Fatalf("signature accepted for different payload")
	}
}

func TestValidateKeyValuePairs(t *testing.T) {
	validator, err := NewHMACValidator(testHMACKey)
	if err != nil {
		t.Fatalf("NewHMACValidator: %v", err)
	}
	data := map[string]string{
		"key2": "value2",
		"key1": "value1",
		"key3": "value3",
	}
	signature, err := validator.CalculateKeyValueSignature(data)
	if err != nil {
		t.Fatalf("CalculateKeyValueSignature: %v", err)
	}
	again, err := validator.CalculateKeyValueSignature(data)
	if err != nil {
		t.Fatalf("CalculateKeyValueSignature: %v", err)
	}
	if signature != again {
		t.Fatalf("key-value signature not deterministic")
	}
	if !validator.ValidateKeyValuePairs(data, signature) {
		t.Fatalf("valid key-value signature rejected")
	}
	data["key1"] = "changed"
	if validator.ValidateKeyValuePairs(data, signature) {
		t.Fatalf("signature accepted after value change")
	}
}
