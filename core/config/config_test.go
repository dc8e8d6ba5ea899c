package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/webreader/providers/tool/webfetch"
	"github.com/leofalp/webreader/providers/tool/websearch"
)

var envKeys = []string{
	"WEBREADER_USER_AGENT", "WEBREADER_PROXY_BASE_URL", "WEBREADER_PROXY_DOMAINS",
	"WEBREADER_TIMEOUT", "WEBREADER_MAX_REDIRECTS", "WEBREADER_MAX_CHARS",
	"WEBREADER_MAX_BODY_BYTES", "WEBREADER_PROXY_DISABLED",
	"BRAVE_API_KEY", "WEBREADER_BRAVE_API_KEY", "WEBREADER_SEARCH_BASE_URL",
	"WEBREADER_SEARCH_TIMEOUT", "WEBREADER_SEARCH_MAX_RESULTS",
	"LOG_LEVEL", "WEBREADER_LOG_LEVEL", "LOG_FORMAT", "WEBREADER_LOG_FORMAT",
}

// clearEnv unsets every variable Load reads. t.Setenv registers the restore,
// which also removes anything godotenv sets during the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestLoad_Defaults tests that an empty setup yields the package defaults
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Fetch.Timeout != webfetch.DefaultTimeout || cfg.Fetch.DefaultMaxChars != webfetch.DefaultMaxChars {
		t.Errorf("Unexpected fetch defaults: %+v", cfg.Fetch)
	}
	if cfg.Search.Timeout != websearch.DefaultTimeout || cfg.Search.BaseURL != websearch.DefaultBaseURL {
		t.Errorf("Unexpected search defaults: %+v", cfg.Search)
	}
}

// TestLoad_YAML tests reading a config file
func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "webreader.yaml", `
fetch:
  timeout: 45s
  max_redirects: 3
  default_max_chars: 8000
  proxy:
    base_url: https://render.example.org/
    domains: [render.example.org, mirror.example.org]
  quality:
    min_chars: 300
search:
  api_key: yaml-key
  max_results: 8
log:
  level: debug
  format: json
`)

	cfg, err := Load(path, filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Fetch.Timeout != 45*time.Second || cfg.Fetch.MaxRedirects != 3 || cfg.Fetch.DefaultMaxChars != 8000 {
		t.Errorf("Unexpected fetch config: %+v", cfg.Fetch)
	}
	if cfg.Fetch.Proxy.BaseURL != "https://render.example.org/" || len(cfg.Fetch.Proxy.Domains) != 2 {
		t.Errorf("Unexpected proxy config: %+v", cfg.Fetch.Proxy)
	}
	if cfg.Fetch.Quality.MinChars != 300 || cfg.Fetch.Quality.MinHTMLSize != 5000 {
		t.Errorf("Unexpected quality config: %+v", cfg.Fetch.Quality)
	}
	if cfg.Search.APIKey != "yaml-key" || cfg.Search.MaxResults != 8 {
		t.Errorf("Unexpected search config: %+v", cfg.Search)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
}

// TestLoad_EnvOverrides tests that env files and variables override the file
func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "webreader.yaml", "fetch:\n  timeout: 45s\nsearch:\n  api_key: yaml-key\n")
	envFile := writeFile(t, dir, "test.env", "BRAVE_API_KEY=dotenv-key\nWEBREADER_MAX_CHARS=1234\n")

	t.Setenv("WEBREADER_TIMEOUT", "12")
	t.Setenv("WEBREADER_PROXY_DOMAINS", "a.example.org, b.example.org")
	t.Setenv("WEBREADER_PROXY_DISABLED", "true")
	t.Setenv("WEBREADER_SEARCH_TIMEOUT", "2500ms")

	cfg, err := Load(path, envFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Fetch.Timeout != 12*time.Second {
		t.Errorf("Expected timeout 12s, got %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.DefaultMaxChars != 1234 {
		t.Errorf("Expected max chars from env file, got %d", cfg.Fetch.DefaultMaxChars)
	}
	if cfg.Search.APIKey != "dotenv-key" {
		t.Errorf("Expected API key from env file, got %q", cfg.Search.APIKey)
	}
	if strings.Join(cfg.Fetch.Proxy.Domains, ",") != "a.example.org,b.example.org" || !cfg.Fetch.Proxy.Disabled {
		t.Errorf("Unexpected proxy config: %+v", cfg.Fetch.Proxy)
	}
	if cfg.Search.Timeout != 2500*time.Millisecond {
		t.Errorf("Expected search timeout 2.5s, got %v", cfg.Search.Timeout)
	}
}

// TestLoad_Errors tests malformed inputs
func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "none.env")

	if _, err := Load(filepath.Join(dir, "missing.yaml"), noEnv); err == nil {
		t.Error("Expected error for a missing config file")
	}

	bad := writeFile(t, dir, "bad.yaml", "fetch: [unclosed")
	if _, err := Load(bad, noEnv); err == nil {
		t.Error("Expected error for invalid YAML")
	}

	t.Setenv("WEBREADER_MAX_REDIRECTS", "many")
	_, err := Load("", noEnv)
	if err == nil || !strings.Contains(err.Error(), "WEBREADER_MAX_REDIRECTS") {
		t.Errorf("Expected error naming the variable, got %v", err)
	}
}
