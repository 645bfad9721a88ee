package webhooks

import (
	"encoding/json"

	"github.com/goliatone/go-adyen/core"
)

// Parse decodes a webhook payload. Item order is preserved exactly as
// delivered; callers that care about processing order rely on it.
func Parse(payload []byte) (*Webhook, error) {
	if len(payload) == 0 {
		return nil, core.NewValidationError("payload", "webhook payload is empty")
	}
	webhook := &Webhook{}
	if err := json.Unmarshal(payload, webhook); err != nil {
		return nil, core.WrapSerializationError(err, "adyen: decode webhook payload", nil)
	}
	return webhook, nil
}
