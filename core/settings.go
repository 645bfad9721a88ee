package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

// Settings is the serializable shape of a client configuration, the
// form loaded from files or environment maps. Resolve turns it into an
// immutable Config.
type Settings struct {
	Environment    string            `koanf:"environment" mapstructure:"environment"`
	LiveURLPrefix  string            `koanf:"live_url_prefix" mapstructure:"live_url_prefix"`
	APIKey         string            `koanf:"api_key" mapstructure:"api_key"`
	Username       string            `koanf:"username" mapstructure:"username"`
	Password       string            `koanf:"password" mapstructure:"password"`
	MaxRetries     *int              `koanf:"max_retries" mapstructure:"max_retries"`
	BaseBackoffMS  int               `koanf:"base_backoff_ms" mapstructure:"base_backoff_ms"`
	RequestTimeout int               `koanf:"request_timeout_ms" mapstructure:"request_timeout_ms"`
	UserAgent      string            `koanf:"user_agent" mapstructure:"user_agent"`
	Headers        map[string]string `koanf:"headers" mapstructure:"headers"`
}

// IntPtr returns a pointer to v. Optional numeric settings use
// pointers so an explicit zero survives layering.
func IntPtr(v int) *int { return &v }

// DefaultSettings returns the library defaults targeting the test
// environment with no credentials.
func DefaultSettings() Settings {
	return Settings{
		Environment:    "test",
		MaxRetries:     IntPtr(DefaultMaxRetries),
		BaseBackoffMS:  int(DefaultBaseBackoff / time.Millisecond),
		RequestTimeout: int(DefaultRequestTimeout / time.Millisecond),
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks structural constraints that do not require secrets.
func (s *Settings) Validate() error {
	if s == nil {
		return NewValidationError("settings", "settings are nil")
	}
	switch strings.ToLower(strings.TrimSpace(s.Environment)) {
	case "", "test", "live":
	default:
		return NewValidationError("environment", "environment must be test or live")
	}
	if s.MaxRetries != nil && *s.MaxRetries < 0 {
		return NewValidationError("max_retries", "retry budget cannot be negative")
	}
	if s.BaseBackoffMS < 0 {
		return NewValidationError("base_backoff_ms", "base backoff cannot be negative")
	}
	if s.RequestTimeout < 0 {
		return NewValidationError("request_timeout_ms", "request timeout cannot be negative")
	}
	return nil
}

// Resolve builds the immutable Config, constructing the environment
// and credentials from the loaded values.
func (s Settings) Resolve() (Config, error) {
	if err := (&s).Validate(); err != nil {
		return Config{}, err
	}

	builder := NewConfigBuilder()

	switch strings.ToLower(strings.TrimSpace(s.Environment)) {
	case "", "test":
		builder.Environment(EnvTest())
	case "live":
		env, err := EnvLive(s.LiveURLPrefix)
		if err != nil {
			return Config{}, err
		}
		builder.Environment(env)
	}

	switch {
	case strings.TrimSpace(s.APIKey) != "":
		builder.APIKey(s.APIKey)
	case strings.TrimSpace(s.Username) != "":
		builder.BasicAuth(s.Username, s.Password)
	}

	if s.MaxRetries != nil {
		builder.MaxRetries(*s.MaxRetries)
	}
	if s.BaseBackoffMS > 0 {
		builder.BaseBackoff(time.Duration(s.BaseBackoffMS) * time.Millisecond)
	}
	if s.RequestTimeout > 0 {
		builder.RequestTimeout(time.Duration(s.RequestTimeout) * time.Millisecond)
	}
	if s.UserAgent != "" {
		builder.UserAgent(s.UserAgent)
	}
	for name, value := range s.Headers {
		builder.Header(name, value)
	}

	return builder.Build()
}

// RawSettingsLoader surfaces configuration values from an external
// source as a flat map keyed by the koanf tags above.
type RawSettingsLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type staticRawSettingsLoader struct {
	Values map[string]any
}

func (l staticRawSettingsLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// NewStaticSettingsLoader returns a loader backed by an in-memory map,
// useful for tests and embedding applications.
func NewStaticSettingsLoader(values map[string]any) RawSettingsLoader {
	return staticRawSettingsLoader{Values: values}
}

// SettingsProvider loads Settings on top of defaults.
type SettingsProvider interface {
	Load(ctx context.Context, defaults Settings) (Settings, error)
}

type CfgxSettingsProvider struct {
	Loader RawSettingsLoader
}

func NewCfgxSettingsProvider(loader RawSettingsLoader) *CfgxSettingsProvider {
	return &CfgxSettingsProvider{Loader: loader}
}

func (p *CfgxSettingsProvider) Load(ctx context.Context, defaults Settings) (Settings, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawSettingsLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Settings{}, err
	}
	settings, err := cfgx.Build[Settings](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Settings]((*Settings).Validate),
	)
	if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// SettingsResolver layers defaults, loaded and runtime settings into a
// single resolved Settings value.
type SettingsResolver interface {
	Resolve(defaults Settings, loaded Settings, runtime Settings) (Settings, error)
}

type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Settings, loaded Settings, runtime Settings) (Settings, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			settingsToLayerMap(defaults, true),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			settingsToLayerMap(loaded, false),
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			settingsToLayerMap(runtime, false),
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Settings{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Settings{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Settings](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Settings]((*Settings).Validate),
	)
	if err != nil {
		return Settings{}, err
	}
	return resolved, nil
}

func settingsToLayerMap(s Settings, includeZero bool) map[string]any {
	layer := map[string]any{}
	if includeZero || strings.TrimSpace(s.Environment) != "" {
		layer["environment"] = s.Environment
	}
	if includeZero || strings.TrimSpace(s.LiveURLPrefix) != "" {
		layer["live_url_prefix"] = s.LiveURLPrefix
	}
	if includeZero || strings.TrimSpace(s.APIKey) != "" {
		layer["api_key"] = s.APIKey
	}
	if includeZero || strings.TrimSpace(s.Username) != "" {
		layer["username"] = s.Username
		layer["password"] = s.Password
	}
	if s.MaxRetries != nil {
		layer["max_retries"] = *s.MaxRetries
	}
	if includeZero || s.BaseBackoffMS != 0 {
		layer["base_backoff_ms"] = s.BaseBackoffMS
	}
	if includeZero || s.RequestTimeout != 0 {
		layer["request_timeout_ms"] = s.RequestTimeout
	}
	if includeZero || strings.TrimSpace(s.UserAgent) != "" {
		layer["user_agent"] = s.UserAgent
	}
	if len(s.Headers) > 0 {
		headers := make(map[string]string, len(s.Headers))
		for name, value := range s.Headers {
			headers[name] = value
		}
		layer["headers"] = headers
	}
	return layer
}

// LoadConfig loads Settings through the provider, layers runtime
// overrides on top and resolves the result to a Config.
func LoadConfig(ctx context.Context, provider SettingsProvider, runtime Settings) (Config, error) {
	defaults := DefaultSettings()
	if provider == nil {
		provider = NewCfgxSettingsProvider(nil)
	}
	loaded, err := provider.Load(ctx, defaults)
	if err != nil {
		return Config{}, err
	}
	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		return Config{}, err
	}
	return resolved.Resolve()
}
