package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-adyen/core"
)

// HMACValidator verifies webhook authenticity with the HMAC-SHA256 key
// configured in the Adyen customer area. Signatures are standard
// base64.
type HMACValidator struct {
	key []byte
}

// NewHMACValidator builds a validator from the hex-encoded key Adyen
// issues.
func NewHMACValidator(hexKey string) (*HMACValidator, error) {
	hexKey = strings.TrimSpace(hexKey)
	if hexKey == "" {
		return nil, core.NewValidationError("hmac_key", "hmac key is required")
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, core.WrapValidationError(err, "hmac_key", "key must be hex encoded")
	}
	return &HMACValidator{key: key}, nil
}

// ValidateNotification checks the signature embedded in the item's
// additionalData. Missing or malformed signatures report false, never
// an error: a forged payload must not distinguish the two.
func (v *HMACValidator) ValidateNotification(item NotificationRequestItem) bool {
	if v == nil {
		return false
	}
	signature := item.HMACSignature()
	if signature == "" {
		return false
	}
	expected, err := v.CalculateNotificationSignature(item)
	if err != nil {
		return false
	}
	return constantTimeEqual(signature, expected)
}

// ValidatePayload checks a raw-payload signature, the scheme the
// Banking and Management API webhook families use through the
// HmacSignature HTTP header.
func (v *HMACValidator) ValidatePayload(payload []byte, signature string) bool {
	if v == nil || strings.TrimSpace(signature) == "" {
		return false
	}
	expected, err := v.calculate(string(payload))
	if err != nil {
		return false
	}
	return constantTimeEqual(signature, expected)
}

// ValidateKeyValuePairs checks a signature over flat key-value data,
// used by webhook variants that do not carry structured items.
func (v *HMACValidator) ValidateKeyValuePairs(data map[string]string, signature string) bool {
	if v == nil || strings.TrimSpace(signature) == "" {
		return false
	}
	expected, err := v.CalculateKeyValueSignature(data)
	if err != nil {
		return false
	}
	return constantTimeEqual(signature, expected)
}

// CalculateNotificationSignature returns the base64 signature for the
// item's canonical signing string.
func (v *HMACValidator) CalculateNotificationSignature(item NotificationRequestItem) (string, error) {
	if v == nil {
		return "", core.NewValidationError("validator", "hmac validator is nil")
	}
	return v.calculate(notificationDataToSign(item))
}

// CalculatePayloadSignature returns the base64 signature for a raw
// payload.
func (v *HMACValidator) CalculatePayloadSignature(payload []byte) (string, error) {
	if v == nil {
		return "", core.NewValidationError("validator", "hmac validator is nil")
	}
	return v.calculate(string(payload))
}

// CalculateKeyValueSignature signs flat key-value data: keys sorted,
// then "key1:key2:...:value1:value2:...".
func (v *HMACValidator) CalculateKeyValueSignature(data map[string]string) (string, error) {
	if v == nil {
		return "", core.NewValidationError("validator", "hmac validator is nil")
	}
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		parts = append(parts, escapeData(key))
	}
	for _, key := range keys {
		parts = append(parts, escapeData(data[key]))
	}
	return v.calculate(strings.Join(parts, ":"))
}

func (v *HMACValidator) calculate(data string) (string, error) {
	if len(v.key) == 0 {
		return "", core.NewValidationError("hmac_key", "hmac key is required")
	}
	mac := hmac.New(sha256.New, v.key)
	_, _ = mac.Write([]byte(escapeData(data)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// notificationDataToSign builds the canonical string:
// pspReference:originalReference:merchantAccountCode:merchantReference:
// value:currency:eventCode:success.
func notificationDataToSign(item NotificationRequestItem) string {
	return fmt.Sprintf("%s:%s:%s:%s:%d:%s:%s:%s",
		item.PSPReference,
		item.OriginalReference,
		item.MerchantAccountCode,
		item.MerchantReference,
		item.Amount.Value,
		item.Amount.Currency,
		item.EventCode,
		item.Success,
	)
}

// escapeData escapes backslashes and colons the way Adyen's signing
// scheme requires.
func escapeData(data string) string {
	data = strings.ReplaceAll(data, `\`, `\\`)
	return strings.ReplaceAll(data, ":", `\:`)
}

func constantTimeEqual(got string, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
