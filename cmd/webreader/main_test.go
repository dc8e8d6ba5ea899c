package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("WEBREADER_PROXY_DISABLED", "true")
	t.Setenv("BRAVE_API_KEY", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// TestFetchCommand tests the fetch subcommand against a local server
func TestFetchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello from the test server"))
	}))
	defer server.Close()

	stdout, _, err := run(t, "fetch", server.URL, "--max-chars", "5")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Expected JSON output, got %q", stdout)
	}
	if result["text"] != "hello" || result["truncated"] != true {
		t.Errorf("Unexpected result %v", result)
	}

	stdout, _, err = run(t, "fetch", server.URL, "--text-only")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "hello from the test server" {
		t.Errorf("Unexpected text output %q", stdout)
	}
}

// TestFetchCommand_Failure tests that failures print the message and exit non-zero
func TestFetchCommand_Failure(t *testing.T) {
	stdout, _, err := run(t, "fetch", "ftp://example.com")
	if !errors.Is(err, errToolFailed) {
		t.Fatalf("Expected errToolFailed, got %v", err)
	}
	if !strings.HasPrefix(stdout, "web_fetch failed for ftp://example.com") {
		t.Errorf("Unexpected output %q", stdout)
	}
}

// TestCallCommand tests raw tool calls through the catalog
func TestCallCommand(t *testing.T) {
	stdout, stderr, err := run(t, "call", "web_search", `{"query": "golang"}`, "--cost")
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if !strings.Contains(stdout, "BRAVE_API_KEY not configured") {
		t.Errorf("Unexpected output %q", stdout)
	}
	if !strings.Contains(stderr, "web_search") || !strings.Contains(stderr, "total:") {
		t.Errorf("Expected cost summary on stderr, got %q", stderr)
	}

	if _, _, err := run(t, "call", "nope", `{}`); err == nil {
		t.Error("Expected error for an unknown tool")
	}
}

// TestToolsCommand tests that both tool schemas are printed
func TestToolsCommand(t *testing.T) {
	stdout, _, err := run(t, "tools")
	if err != nil {
		t.Fatalf("tools failed: %v", err)
	}

	var descriptions []struct {
		Name       string          `json:"name"`
		Parameters json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(stdout), &descriptions); err != nil {
		t.Fatalf("Expected JSON output, got %q", stdout)
	}
	if len(descriptions) != 2 || descriptions[0].Name != "web_fetch" || descriptions[1].Name != "web_search" {
		t.Errorf("Unexpected tools %+v", descriptions)
	}
}

// TestInvalidLogLevel tests flag validation
func TestInvalidLogLevel(t *testing.T) {
	if _, _, err := run(t, "tools", "--log-level", "loud"); err == nil {
		t.Error("Expected error for an unknown log level")
	}
}
