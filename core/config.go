package core

import (
	"fmt"
	"strings"
	"time"
)

// Version of the client library, reported in the default user agent.
const Version = "0.1.0"

const (
	// DefaultMaxRetries bounds the retry loop: a call is attempted at
	// most DefaultMaxRetries+1 times unless configured otherwise.
	DefaultMaxRetries = 2
	// DefaultBaseBackoff is the delay before the first retry; each
	// subsequent delay doubles.
	DefaultBaseBackoff = 100 * time.Millisecond
	// DefaultRequestTimeout bounds a single call including retries.
	DefaultRequestTimeout = 60 * time.Second
)

// DefaultUserAgent identifies the library on outbound requests.
var DefaultUserAgent = "adyen-go/" + Version

// Config is the immutable client configuration shared by every call
// issued through a transport executor. Build one via ConfigBuilder or
// Settings.Resolve; the zero value is rejected everywhere.
type Config struct {
	environment    Environment
	credentials    Credentials
	maxRetries     int
	baseBackoff    time.Duration
	requestTimeout time.Duration
	userAgent      string
	defaultHeaders map[string]string
}

// Environment returns the configured deployment target.
func (c Config) Environment() Environment { return c.environment }

// Credentials returns the configured authentication material.
func (c Config) Credentials() Credentials { return c.credentials }

// MaxRetries returns the configured retry budget (retries, not
// attempts).
func (c Config) MaxRetries() int { return c.maxRetries }

// BaseBackoff returns the delay before the first retry.
func (c Config) BaseBackoff() time.Duration { return c.baseBackoff }

// RequestTimeout returns the per-call deadline applied when the
// caller's context carries none.
func (c Config) RequestTimeout() time.Duration { return c.requestTimeout }

// UserAgent returns the User-Agent header value.
func (c Config) UserAgent() string { return c.userAgent }

// DefaultHeaders returns a copy of headers attached to every request.
func (c Config) DefaultHeaders() map[string]string {
	if len(c.defaultHeaders) == 0 {
		return map[string]string{}
	}
	headers := make(map[string]string, len(c.defaultHeaders))
	for key, value := range c.defaultHeaders {
		headers[key] = value
	}
	return headers
}

// Validate reports whether the configuration is complete.
func (c Config) Validate() error {
	if c.credentials.IsZero() {
		return NewValidationError("credentials", "credentials are required")
	}
	if c.maxRetries < 0 {
		return NewValidationError("max_retries", "retry budget cannot be negative")
	}
	if c.baseBackoff <= 0 {
		return NewValidationError("base_backoff", "base backoff must be positive")
	}
	if c.requestTimeout <= 0 {
		return NewValidationError("request_timeout", "request timeout must be positive")
	}
	return nil
}

// ConfigBuilder assembles a Config. Build validates required fields
// and returns an error instead of panicking on incomplete input.
type ConfigBuilder struct {
	environment    Environment
	credentials    Credentials
	credentialsErr error
	maxRetries     int
	hasMaxRetries  bool
	baseBackoff    time.Duration
	requestTimeout time.Duration
	userAgent      string
	defaultHeaders map[string]string
}

// NewConfigBuilder starts a builder targeting the test environment.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		environment:    EnvTest(),
		defaultHeaders: map[string]string{},
	}
}

// Environment sets the deployment target.
func (b *ConfigBuilder) Environment(env Environment) *ConfigBuilder {
	b.environment = env
	return b
}

// Credentials sets pre-built authentication material.
func (b *ConfigBuilder) Credentials(creds Credentials) *ConfigBuilder {
	b.credentials = creds
	b.credentialsErr = nil
	return b
}

// APIKey sets API-key authentication. Validation errors surface from
// Build.
func (b *ConfigBuilder) APIKey(key string) *ConfigBuilder {
	b.credentials, b.credentialsErr = NewAPIKeyCredentials(key)
	return b
}

// BasicAuth sets HTTP basic authentication. Validation errors surface
// from Build.
func (b *ConfigBuilder) BasicAuth(username string, password string) *ConfigBuilder {
	b.credentials, b.credentialsErr = NewBasicCredentials(username, password)
	return b
}

// MaxRetries sets the retry budget.
func (b *ConfigBuilder) MaxRetries(retries int) *ConfigBuilder {
	b.maxRetries = retries
	b.hasMaxRetries = true
	return b
}

// BaseBackoff sets the delay before the first retry.
func (b *ConfigBuilder) BaseBackoff(backoff time.Duration) *ConfigBuilder {
	b.baseBackoff = backoff
	return b
}

// RequestTimeout sets the per-call deadline.
func (b *ConfigBuilder) RequestTimeout(timeout time.Duration) *ConfigBuilder {
	b.requestTimeout = timeout
	return b
}

// UserAgent overrides the default User-Agent header.
func (b *ConfigBuilder) UserAgent(userAgent string) *ConfigBuilder {
	b.userAgent = strings.TrimSpace(userAgent)
	return b
}

// Header adds a default header attached to every request.
func (b *ConfigBuilder) Header(name string, value string) *ConfigBuilder {
	name = strings.TrimSpace(name)
	if name == "" {
		return b
	}
	if b.defaultHeaders == nil {
		b.defaultHeaders = map[string]string{}
	}
	b.defaultHeaders[name] = strings.TrimSpace(value)
	return b
}

// Build validates and freezes the configuration.
func (b *ConfigBuilder) Build() (Config, error) {
	if b == nil {
		return Config{}, NewValidationError("config", "builder is nil")
	}
	if b.credentialsErr != nil {
		return Config{}, b.credentialsErr
	}

	cfg := Config{
		environment:    b.environment,
		credentials:    b.credentials,
		maxRetries:     DefaultMaxRetries,
		baseBackoff:    b.baseBackoff,
		requestTimeout: b.requestTimeout,
		userAgent:      b.userAgent,
		defaultHeaders: map[string]string{},
	}
	if b.hasMaxRetries {
		cfg.maxRetries = b.maxRetries
	}
	if cfg.baseBackoff == 0 {
		cfg.baseBackoff = DefaultBaseBackoff
	}
	if cfg.requestTimeout == 0 {
		cfg.requestTimeout = DefaultRequestTimeout
	}
	if cfg.userAgent == "" {
		cfg.userAgent = DefaultUserAgent
	}
	for key, value := range b.defaultHeaders {
		cfg.defaultHeaders[key] = value
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequestContext describes one outbound call. Values are ephemeral:
// created per call, never persisted, never mutated by the transport.
type RequestContext struct {
	Method string
	// URL is the absolute request URL, typically built from an
	// Environment base URL plus an endpoint path.
	URL string
	// Body is JSON-encoded when non-nil; nil means no request body.
	Body any
	// IdempotencyKey and Reference feed trace events only; they are
	// not sent unless an endpoint puts them in Body or headers.
	IdempotencyKey string
	Reference      string
	Headers        map[string]string
	Query          map[string]string
}

// Validate checks the minimal request shape before any encoding.
func (rc RequestContext) Validate() error {
	if strings.TrimSpace(rc.Method) == "" {
		return NewValidationError("method", "http method is required")
	}
	if strings.TrimSpace(rc.URL) == "" {
		return NewValidationError("url", "request url is required")
	}
	return nil
}

// ResponseEnvelope carries the raw successful response plus call
// telemetry.
type ResponseEnvelope struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// Attempts is the number of send attempts the call used, 1 when
	// the first attempt succeeded.
	Attempts int
	Elapsed  time.Duration
}

func (r ResponseEnvelope) String() string {
	return fmt.Sprintf("response(status=%d attempts=%d bytes=%d)", r.StatusCode, r.Attempts, len(r.Body))
}
