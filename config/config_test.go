package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/billmock/config"
)

func writeAndLoad(t *testing.T, content string) *config.Config {
	t.Helper()

	cfg, err := writeAndLoadErr(t, content)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func writeAndLoadErr(t *testing.T, content string) (*config.Config, error) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return config.Load(path)
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 15s

auth:
  username: "alice"
  password: "s3cret"

rate_limit:
  max_requests: 5
  window_ms: 2000
`

	cfg := writeAndLoad(t, content)

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %s, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.Username != "alice" {
		t.Errorf("Auth.Username = %s, want alice", cfg.Auth.Username)
	}
	if cfg.RateLimit.MaxRequests != 5 {
		t.Errorf("RateLimit.MaxRequests = %d, want 5", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.Window() != 2*time.Second {
		t.Errorf("RateLimit.Window() = %v, want 2s", cfg.RateLimit.Window())
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg := writeAndLoad(t, "{}\n")

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("default Host = %s, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("default Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Auth.Username != "testuser" {
		t.Errorf("default Auth.Username = %s, want testuser", cfg.Auth.Username)
	}
	if cfg.Auth.Password != "testpass" {
		t.Errorf("default Auth.Password = %s, want testpass", cfg.Auth.Password)
	}
	if cfg.RateLimit.MaxRequests != 2 {
		t.Errorf("default RateLimit.MaxRequests = %d, want 2", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.Window() != time.Second {
		t.Errorf("default window = %v, want 1s", cfg.RateLimit.Window())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Logging.Level = %s, want info", cfg.Logging.Level)
	}
	// Default fixture set should be filled in
	if cfg.Fixtures.ContractID != 441759 {
		t.Errorf("default Fixtures.ContractID = %d, want 441759", cfg.Fixtures.ContractID)
	}
	if cfg.Fixtures.InvalidContractID != "999999" {
		t.Errorf("default Fixtures.InvalidContractID = %q, want 999999", cfg.Fixtures.InvalidContractID)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	os.Setenv("TEST_MOCK_USER", "envuser")
	defer os.Unsetenv("TEST_MOCK_USER")

	content := `
auth:
  username: "${TEST_MOCK_USER}"
`

	cfg := writeAndLoad(t, content)

	if cfg.Auth.Username != "envuser" {
		t.Errorf("Auth.Username = %s, want envuser", cfg.Auth.Username)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	content := `
server:
  port: 99999
`

	if _, err := writeAndLoadErr(t, content); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	content := `
rate_limit:
  max_requests: -1
`

	if _, err := writeAndLoadErr(t, content); err == nil {
		t.Fatal("expected error for negative max_requests")
	}
}

func TestLoad_InvalidSentinelContract(t *testing.T) {
	content := `
fixtures:
  customer_id: 1
  contract_id: 2
  invalid_contract_id: "abc123"
  vdc_uuid: "f2c2edf6-49f7-4687-8100-872b4d02ddcc"
  resource_uuid: "504b4dff-56e3-49cd-89b1-dbed716c6265"
  datacenter_id: "54eb1ed9-06f5-4bfb-a4f0-07cc373f5ee1"
  period: "2020-01"
`

	if _, err := writeAndLoadErr(t, content); err == nil {
		t.Fatal("expected error for non-numeric sentinel contract id")
	}
}

func TestLoad_InvalidFixtureUUID(t *testing.T) {
	content := `
fixtures:
  customer_id: 1
  contract_id: 2
  invalid_contract_id: "999999"
  vdc_uuid: "not-a-uuid"
  resource_uuid: "504b4dff-56e3-49cd-89b1-dbed716c6265"
  datacenter_id: "54eb1ed9-06f5-4bfb-a4f0-07cc373f5ee1"
  period: "2020-01"
`

	if _, err := writeAndLoadErr(t, content); err == nil {
		t.Fatal("expected error for malformed fixture UUID")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	os.Setenv("BILLMOCK_SERVER_PORT", "7777")
	os.Setenv("BILLMOCK_AUTH_PASSWORD", "override")
	defer func() {
		os.Unsetenv("BILLMOCK_SERVER_PORT")
		os.Unsetenv("BILLMOCK_AUTH_PASSWORD")
	}()

	content := `
server:
  port: 8080
auth:
  username: "fileuser"
  password: "filepass"
`

	cfg := writeAndLoad(t, content)

	// Env should override file
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (env override)", cfg.Server.Port)
	}
	if cfg.Auth.Password != "override" {
		t.Errorf("Auth.Password = %s, want override (env override)", cfg.Auth.Password)
	}
	// File value should still be used for non-overridden
	if cfg.Auth.Username != "fileuser" {
		t.Errorf("Auth.Username = %s, want fileuser", cfg.Auth.Username)
	}
}

func TestDefault_ZeroConfig(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("Default error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Fixtures.InvoiceID != "GY00012345" {
		t.Errorf("Fixtures.InvoiceID = %q, want GY00012345", cfg.Fixtures.InvoiceID)
	}
}

func TestLoadWithFallback_FileExists(t *testing.T) {
	content := `
server:
  port: 4444
`

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadWithFallback(path)
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}

	if cfg.Server.Port != 4444 {
		t.Errorf("Server.Port = %d, want 4444", cfg.Server.Port)
	}
}

func TestLoadWithFallback_MissingFile(t *testing.T) {
	cfg, err := config.LoadWithFallback("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("LoadWithFallback error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want default 3000", cfg.Server.Port)
	}
}
