package core

import (
	"context"
	"testing"
	"time"
)

func TestConfigBuilderDefaults(t *testing.T) {
	cfg, err := NewConfigBuilder().APIKey(testAPIKey).Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !cfg.Environment().IsTest() {
		t.Fatalf("default environment should be test")
	}
	if cfg.MaxRetries() != DefaultMaxRetries {
		t.Fatalf("MaxRetries = %d, want %d", cfg.MaxRetries(), DefaultMaxRetries)
	}
	if cfg.BaseBackoff() != DefaultBaseBackoff {
		t.Fatalf("BaseBackoff = %s, want %s", cfg.BaseBackoff(), DefaultBaseBackoff)
	}
	if cfg.RequestTimeout() != DefaultRequestTimeout {
		t.Fatalf("RequestTimeout = %s, want %s", cfg.RequestTimeout(), DefaultRequestTimeout)
	}
	if cfg.UserAgent() != DefaultUserAgent {
		t.Fatalf("UserAgent = %q, want %q", cfg.UserAgent(), DefaultUserAgent)
	}
}

func TestConfigBuilderRequiresCredentials(t *testing.T) {
	if _, err := NewConfigBuilder().Build(); err == nil {
		t.Fatalf("Build without credentials succeeded, want error")
	}
}

func TestConfigBuilderSurfacesCredentialErrors(t *testing.T) {
	if _, err := NewConfigBuilder().APIKey("short").Build(); err == nil {
		t.Fatalf("Build with invalid api key succeeded, want error")
	}
}

func TestConfigBuilderZeroRetriesAllowed(t *testing.T) {
	cfg, err := NewConfigBuilder().APIKey(testAPIKey).MaxRetries(0).Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if cfg.MaxRetries() != 0 {
		t.Fatalf("MaxRetries = %d, want 0", cfg.MaxRetries())
	}
}

func TestConfigBuilderOverrides(t *testing.T) {
	env, err := EnvLive("demo")
	if err != nil {
		t.Fatalf("EnvLive returned error: %v", err)
	}
	cfg, err := NewConfigBuilder().
		Environment(env).
		BasicAuth("ws_user", "pass").
		MaxRetries(5).
		BaseBackoff(250 * time.Millisecond).
		RequestTimeout(10 * time.Second).
		UserAgent("custom-agent/1.0").
		Header("X-Tenant", "acme").
		Build()
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !cfg.Environment().IsLive() {
		t.Fatalf("environment should be live")
	}
	if cfg.MaxRetries() != 5 {
		t.Fatalf("MaxRetries = %d, want 5", cfg.MaxRetries())
	}
	if cfg.BaseBackoff() != 250*time.Millisecond {
		t.Fatalf("BaseBackoff = %s", cfg.BaseBackoff())
	}
	headers := cfg.DefaultHeaders()
	if headers["X-Tenant"] != "acme" {
		t.Fatalf("default header missing: %v", headers)
	}
	headers["X-Tenant"] = "mutated"
	if cfg.DefaultHeaders()["X-Tenant"] != "acme" {
		t.Fatalf("DefaultHeaders should return a copy")
	}
}

func TestSettingsResolve(t *testing.T) {
	settings := DefaultSettings()
	settings.APIKey = testAPIKey
	settings.MaxRetries = IntPtr(3)
	settings.BaseBackoffMS = 50

	cfg, err := settings.Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.MaxRetries() != 3 {
		t.Fatalf("MaxRetries = %d, want 3", cfg.MaxRetries())
	}
	if cfg.BaseBackoff() != 50*time.Millisecond {
		t.Fatalf("BaseBackoff = %s, want 50ms", cfg.BaseBackoff())
	}
	if cfg.Credentials().Scheme() != AuthSchemeAPIKey {
		t.Fatalf("credential scheme = %s, want api_key", cfg.Credentials().Scheme())
	}
}

func TestSettingsResolveLiveRequiresPrefix(t *testing.T) {
	settings := DefaultSettings()
	settings.Environment = "live"
	settings.APIKey = testAPIKey
	if _, err := settings.Resolve(); err == nil {
		t.Fatalf("live settings without url prefix resolved, want error")
	}
}

func TestSettingsValidateRejectsUnknownEnvironment(t *testing.T) {
	settings := DefaultSettings()
	settings.Environment = "staging"
	if err := (&settings).Validate(); err == nil {
		t.Fatalf("unknown environment accepted")
	}
}

func TestLoadConfigLayering(t *testing.T) {
	provider := NewCfgxSettingsProvider(NewStaticSettingsLoader(map[string]any{
		"api_key":     testAPIKey,
		"max_retries": 4,
		"user_agent":  "from-config/1.0",
	}))
	runtime := Settings{UserAgent: "from-runtime/2.0"}

	cfg, err := LoadConfig(context.Background(), provider, runtime)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxRetries() != 4 {
		t.Fatalf("MaxRetries = %d, want 4 from config layer", cfg.MaxRetries())
	}
	if cfg.UserAgent() != "from-runtime/2.0" {
		t.Fatalf("UserAgent = %q, want runtime layer to win", cfg.UserAgent())
	}
	if cfg.BaseBackoff() != DefaultBaseBackoff {
		t.Fatalf("BaseBackoff = %s, want default", cfg.BaseBackoff())
	}
}

func TestLoadConfigWithoutCredentialsFails(t *testing.T) {
	if _, err := LoadConfig(context.Background(), nil, Settings{}); err == nil {
		t.Fatalf("LoadConfig without credentials succeeded, want error")
	}
}
