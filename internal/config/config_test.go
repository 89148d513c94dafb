package config

import (
	"strings"
	"testing"
)

// memBackend is an in-memory ConfigBackend for tests.
type memBackend struct {
	data map[string]any
}

func newMemBackend() *memBackend {
	return &memBackend{data: make(map[string]any)}
}

func (m *memBackend) GetString(key string) (string, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (m *memBackend) GetInt(key string) (int, bool, error) {
	v, ok := m.data[key]
	if !ok {
		return 0, false, nil
	}
	return v.(int), true, nil
}

func (m *memBackend) SetString(key, val string) error {
	m.data[key] = val
	return nil
}

func (m *memBackend) SetInt(key string, val int) error {
	m.data[key] = val
	return nil
}

func (m *memBackend) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// TestDefaults verifies all default values are applied when the backend is
// empty.
func TestDefaults(t *testing.T) {
	t.Setenv("FOLIO_SERVER_PORT", "")
	t.Setenv("FOLIO_STORAGE_DATA_DIR", "")
	t.Setenv("FOLIO_LOG_LEVEL", "")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 4600 {
		t.Errorf("Server.Port = %d, want 4600", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if !strings.Contains(cfg.Storage.DataDir, "folio") {
		t.Errorf("Storage.DataDir = %q, want a folio directory", cfg.Storage.DataDir)
	}
}

// TestBackendValues verifies backend values override defaults.
func TestBackendValues(t *testing.T) {
	t.Setenv("FOLIO_SERVER_PORT", "")
	t.Setenv("FOLIO_STORAGE_DATA_DIR", "")

	b := newMemBackend()
	b.SetInt("server.port", 9999)
	b.SetString("storage.data_dir", "/tmp/folio-test")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Storage.DataDir != "/tmp/folio-test" {
		t.Errorf("Storage.DataDir = %q, want /tmp/folio-test", cfg.Storage.DataDir)
	}
}

// TestEnvOverride verifies environment variables win over backend values.
func TestEnvOverride(t *testing.T) {
	b := newMemBackend()
	b.SetInt("server.port", 9999)
	b.SetString("log.level", "warn")

	t.Setenv("FOLIO_SERVER_PORT", "7777")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want env override 7777", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want env override debug", cfg.Log.Level)
	}
}

// TestEnvOverrideBadInt verifies an unparseable integer env var falls back
// instead of failing the load.
func TestEnvOverrideBadInt(t *testing.T) {
	t.Setenv("FOLIO_SERVER_PORT", "not-a-number")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 4600 {
		t.Errorf("Server.Port = %d, want default 4600", cfg.Server.Port)
	}
}

func TestShowAllHidesSecrets(t *testing.T) {
	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, k := range ShowAll(cfg) {
		if k.Key == "server.api_token" {
			t.Error("ShowAll exposed the API token")
		}
	}
}

func TestValidKeysExcludeSecrets(t *testing.T) {
	for _, k := range ValidKeys() {
		if k == "server.api_token" {
			t.Error("ValidKeys listed the secret API token key")
		}
	}
	found := false
	for _, k := range ValidKeys() {
		if k == "server.port" {
			found = true
		}
	}
	if !found {
		t.Error("ValidKeys missing server.port")
	}
}
