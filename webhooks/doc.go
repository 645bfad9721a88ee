// Package webhooks parses Adyen notification payloads, verifies their
// HMAC signatures and dispatches items to registered handlers with
// duplicate-delivery protection.
package webhooks
