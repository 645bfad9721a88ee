package core

import (
	"encoding/base64"
	"strings"
	"unicode"
)

// APIKeyHeader is the custom header Adyen expects for API-key
// authentication.
const APIKeyHeader = "X-API-Key"

const (
	minAPIKeyLength = 10
	maxAPIKeyLength = 200
)

// AuthScheme identifies which credential scheme is active.
type AuthScheme string

const (
	AuthSchemeAPIKey AuthScheme = "api_key"
	AuthSchemeBasic  AuthScheme = "basic"
)

// Credentials holds exactly one authentication scheme for outbound
// calls. Construct via NewAPIKeyCredentials or NewBasicCredentials;
// the zero value is invalid and rejected by Config validation.
//
// Credentials never expose secret material through String or fmt
// verbs.
type Credentials struct {
	scheme   AuthScheme
	apiKey   string
	username string
	password string
}

// NewAPIKeyCredentials validates and wraps an Adyen API key. The key
// is the most common scheme; it is sent in the X-API-Key header.
func NewAPIKeyCredentials(key string) (Credentials, error) {
	if key == "" {
		return Credentials{}, NewAuthError("adyen: api key cannot be empty")
	}
	if len(key) < minAPIKeyLength {
		return Credentials{}, NewAuthError("adyen: api key appears to be too short")
	}
	if len(key) > maxAPIKeyLength {
		return Credentials{}, NewAuthError("adyen: api key appears to be too long")
	}
	for _, r := range key {
		if unicode.IsSpace(r) {
			return Credentials{}, NewAuthError("adyen: api key cannot contain whitespace")
		}
	}
	return Credentials{scheme: AuthSchemeAPIKey, apiKey: key}, nil
}

// NewBasicCredentials validates and wraps HTTP basic-auth material,
// used by the Legal Entity Management API.
func NewBasicCredentials(username string, password string) (Credentials, error) {
	if username == "" {
		return Credentials{}, NewAuthError("adyen: basic auth username cannot be empty")
	}
	if password == "" {
		return Credentials{}, NewAuthError("adyen: basic auth password cannot be empty")
	}
	return Credentials{scheme: AuthSchemeBasic, username: username, password: password}, nil
}

// Scheme returns the active authentication scheme, empty for the zero
// value.
func (c Credentials) Scheme() AuthScheme { return c.scheme }

// IsZero reports whether no credential scheme has been configured.
func (c Credentials) IsZero() bool { return c.scheme == "" }

// Username returns the basic-auth username, empty for API-key
// credentials.
func (c Credentials) Username() string { return c.username }

// Apply returns the header name and value to attach to an outbound
// request.
func (c Credentials) Apply() (header string, value string, err error) {
	switch c.scheme {
	case AuthSchemeAPIKey:
		return APIKeyHeader, c.apiKey, nil
	case AuthSchemeBasic:
		encoded := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
		return "Authorization", "Basic " + encoded, nil
	default:
		return "", "", NewAuthError("adyen: credentials are required")
	}
}

func (c Credentials) String() string {
	switch c.scheme {
	case AuthSchemeAPIKey:
		return "ApiKey(" + RedactedValue + ")"
	case AuthSchemeBasic:
		return "BasicAuth(username: " + c.username + ", password: " + RedactedValue + ")"
	default:
		return "Credentials(unset)"
	}
}

// GoString mirrors String so %#v never leaks the key either.
func (c Credentials) GoString() string { return c.String() }

// Redacted returns a loggable description of the credential scheme.
func (c Credentials) Redacted() string {
	return strings.TrimSpace(string(c.scheme)) + ":" + RedactedValue
}
