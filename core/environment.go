package core

import (
	"fmt"
	"strings"
)

const maxURLPrefixLength = 100

// Environment selects the Adyen deployment target. The zero value is
// not valid; use EnvTest or EnvLive.
type Environment struct {
	live      bool
	urlPrefix string
}

// EnvTest returns the sandbox environment.
func EnvTest() Environment {
	return Environment{}
}

// EnvLive returns the production environment. The prefix is the
// merchant-specific hostname fragment Adyen assigns for live classic
// and checkout endpoints; it is required and validated here so that a
// misconfigured prefix fails fast rather than on the first call.
func EnvLive(urlPrefix string) (Environment, error) {
	prefix := strings.TrimSpace(urlPrefix)
	if prefix == "" {
		return Environment{}, NewValidationError("url_prefix", "live url prefix cannot be empty")
	}
	if len(prefix) > maxURLPrefixLength {
		return Environment{}, NewValidationError(
			"url_prefix",
			fmt.Sprintf("live url prefix cannot be longer than %d characters", maxURLPrefixLength),
		)
	}
	for _, r := range prefix {
		if !isPrefixRune(r) {
			return Environment{}, NewValidationError(
				"url_prefix",
				"live url prefix can only contain alphanumeric characters, hyphens, and underscores",
			)
		}
	}
	return Environment{live: true, urlPrefix: prefix}, nil
}

func isPrefixRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}

// IsLive reports whether this is the production environment.
func (e Environment) IsLive() bool { return e.live }

// IsTest reports whether this is the sandbox environment.
func (e Environment) IsTest() bool { return !e.live }

// URLPrefix returns the live hostname prefix, empty for test.
func (e Environment) URLPrefix() string { return e.urlPrefix }

func (e Environment) String() string {
	if e.live {
		return fmt.Sprintf("live(%s)", e.urlPrefix)
	}
	return "test"
}

// The base URLs below are part of Adyen's published interface and are
// reproduced verbatim from the API reference.

// ClassicAPIURL returns the base URL for the classic Payments,
// Recurring, and Payout APIs.
func (e Environment) ClassicAPIURL() string {
	if e.live {
		return fmt.Sprintf("https://%s-pal-live.adyenpayments.com", e.urlPrefix)
	}
	return "https://pal-test.adyen.com"
}

// CheckoutAPIURL returns the base URL for the Checkout API.
func (e Environment) CheckoutAPIURL() string {
	if e.live {
		return fmt.Sprintf("https://%s-checkout-live.adyenpayments.com", e.urlPrefix)
	}
	return "https://checkout-test.adyen.com"
}

// ManagementAPIURL returns the base URL for the Management API.
func (e Environment) ManagementAPIURL() string {
	if e.live {
		return "https://management-live.adyen.com"
	}
	return "https://management-test.adyen.com"
}

// BalancePlatformAPIURL returns the base URL for the Balance Platform
// and Transfers APIs.
func (e Environment) BalancePlatformAPIURL() string {
	if e.live {
		return "https://balanceplatform-api-live.adyen.com"
	}
	return "https://balanceplatform-api-test.adyen.com"
}

// LegalEntityAPIURL returns the base URL for the Legal Entity
// Management API.
func (e Environment) LegalEntityAPIURL() string {
	if e.live {
		return "https://kyc-live.adyen.com"
	}
	return "https://kyc-test.adyen.com"
}

// DisputesAPIURL returns the base URL for the Disputes and Data
// Protection APIs.
func (e Environment) DisputesAPIURL() string {
	if e.live {
		return "https://ca-live.adyen.com"
	}
	return "https://ca-test.adyen.com"
}

// TerminalAPIURL returns the base URL for the cloud Terminal API.
func (e Environment) TerminalAPIURL() string {
	if e.live {
		return "https://terminal-api-live.adyen.com"
	}
	return "https://terminal-api-test.adyen.com"
}
