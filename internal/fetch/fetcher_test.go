package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/entra-tools/ip-block-lists/internal/config"
)

func testConfig(t *testing.T, extra ...*config.ProviderConfig) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.General.ProvidersDir = t.TempDir()
	cfg.Providers = extra
	return cfg
}

func TestFetch_SuccessfulFetch(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ExitAddress 198.51.100.7 443\nExitAddress 192.0.2.9 9001\nExitAddress 198.51.100.7 9030\n"))
	}))
	defer server.Close()

	cfg := testConfig(t, &config.ProviderConfig{
		Name:   "testtor",
		URL:    server.URL,
		Parser: "tor_exit",
	})

	fetcher := NewFetcher(cfg)
	result := fetcher.Fetch("testtor", false)

	if !result.Success() {
		t.Fatalf("expected success, got: %v", result.Err)
	}
	if result.Count != 2 {
		t.Errorf("expected 2 CIDRs after dedup, got %d", result.Count)
	}
	if gotUserAgent != config.DefaultUserAgent {
		t.Errorf("expected User-Agent %q, got %q", config.DefaultUserAgent, gotUserAgent)
	}

	content, err := os.ReadFile(filepath.Join(cfg.General.ProvidersDir, "testtor.txt"))
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	expected := "192.0.2.9/32\n198.51.100.7/32\n"
	if string(content) != expected {
		t.Errorf("got %q, want %q (deduplicated, sorted)", string(content), expected)
	}
}

func TestFetch_ZeroCIDRsIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("SomethingElse 192.0.2.1\n"))
	}))
	defer server.Close()

	cfg := testConfig(t, &config.ProviderConfig{
		Name:   "testtor",
		URL:    server.URL,
		Parser: "tor_exit",
	})

	// Pre-existing output must be left untouched on failure
	existing := filepath.Join(cfg.General.ProvidersDir, "testtor.txt")
	if err := os.WriteFile(existing, []byte("203.0.113.0/24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := NewFetcher(cfg)
	result := fetcher.Fetch("testtor", false)

	if result.Success() {
		t.Fatal("expected failure for a feed yielding zero CIDRs")
	}

	content, err := os.ReadFile(existing)
	if err != nil || string(content) != "203.0.113.0/24\n" {
		t.Errorf("output file was modified on failure: %q, %v", string(content), err)
	}
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(t, &config.ProviderConfig{
		Name:   "broken",
		URL:    server.URL,
		Parser: "tor_exit",
	})

	result := NewFetcher(cfg).Fetch("broken", false)
	if result.Success() {
		t.Error("expected failure for HTTP 500")
	}
}

func TestFetch_UnknownProvider(t *testing.T) {
	cfg := testConfig(t)
	result := NewFetcher(cfg).Fetch("nope", false)
	if result.Success() {
		t.Error("expected failure for unknown provider")
	}
}

func TestFetch_DryRunWritesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ExitAddress 198.51.100.7 443\n"))
	}))
	defer server.Close()

	cfg := testConfig(t, &config.ProviderConfig{
		Name:   "testtor",
		URL:    server.URL,
		Parser: "tor_exit",
	})

	result := NewFetcher(cfg).Fetch("testtor", true)
	if !result.Success() || result.Count != 1 {
		t.Fatalf("expected dry-run success with 1 CIDR, got %+v", result)
	}

	if _, err := os.Stat(filepath.Join(cfg.General.ProvidersDir, "testtor.txt")); !os.IsNotExist(err) {
		t.Error("dry run must not write the output file")
	}
}

func TestFetchAll_FailureIsolation(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ExitAddress 198.51.100.7 443\n"))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	badURL := bad.URL
	bad.Close() // connection refused from now on

	cfg := testConfig(t,
		&config.ProviderConfig{Name: "aa", URL: badURL, Parser: "tor_exit"},
		&config.ProviderConfig{Name: "bb", URL: good.URL, Parser: "tor_exit"},
	)

	results := NewFetcher(cfg).FetchAll([]string{"aa", "bb"}, false)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Success() {
		t.Error("expected aa to fail")
	}
	if !results[1].Success() {
		t.Errorf("expected bb to succeed despite aa failing: %v", results[1].Err)
	}

	if _, err := os.Stat(filepath.Join(cfg.General.ProvidersDir, "bb.txt")); err != nil {
		t.Errorf("bb output file missing: %v", err)
	}
}
