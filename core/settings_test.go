package core

import (
	"context"
	"testing"
)

func TestCfgxProviderLayersRawValuesOverDefaults(t *testing.T) {
	loader := NewStaticSettingsLoader(map[string]any{
		"api_key":     testAPIKey,
		"max_retries": 4,
	})

	loaded, err := NewCfgxSettingsProvider(loader).Load(context.Background(), DefaultSettings())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.APIKey != testAPIKey {
		t.Fatalf("APIKey not taken from loader")
	}
	if loaded.MaxRetries == nil || *loaded.MaxRetries != 4 {
		t.Fatalf("MaxRetries = %v, want loader override 4", loaded.MaxRetries)
	}
	if loaded.Environment != "test" {
		t.Fatalf("Environment = %q, want default to survive", loaded.Environment)
	}
}

func TestGoOptionsResolverPrecedence(t *testing.T) {
	defaults := DefaultSettings()
	loaded := Settings{
		APIKey:        testAPIKey,
		MaxRetries:    IntPtr(4),
		BaseBackoffMS: 250,
	}
	runtime := Settings{MaxRetries: IntPtr(1)}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.MaxRetries == nil || *resolved.MaxRetries != 1 {
		t.Fatalf("MaxRetries = %v, want runtime layer to win", resolved.MaxRetries)
	}
	if resolved.BaseBackoffMS != 250 {
		t.Fatalf("BaseBackoffMS = %d, want config layer to survive", resolved.BaseBackoffMS)
	}
	if resolved.Environment != "test" {
		t.Fatalf("Environment = %q, want default", resolved.Environment)
	}
}

func TestLoadConfigExplicitZeroRetries(t *testing.T) {
	provider := NewCfgxSettingsProvider(NewStaticSettingsLoader(map[string]any{
		"api_key":     testAPIKey,
		"max_retries": 0,
	}))

	cfg, err := LoadConfig(context.Background(), provider, Settings{})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MaxRetries() != 0 {
		t.Fatalf("MaxRetries = %d, want explicitly configured 0", cfg.MaxRetries())
	}
}

func TestGoOptionsResolverRuntimeZeroRetries(t *testing.T) {
	defaults := DefaultSettings()
	loaded := Settings{APIKey: testAPIKey, MaxRetries: IntPtr(4)}
	runtime := Settings{MaxRetries: IntPtr(0)}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.MaxRetries == nil || *resolved.MaxRetries != 0 {
		t.Fatalf("MaxRetries = %v, want runtime zero to win", resolved.MaxRetries)
	}

	cfg, err := resolved.Resolve()
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.MaxRetries() != 0 {
		t.Fatalf("MaxRetries = %d, want 0", cfg.MaxRetries())
	}
}
