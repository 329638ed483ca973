package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/entra-tools/ip-block-lists/internal/config"
)

func testServer(t *testing.T) (*Server, *config.Config) {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.General.ProvidersDir = filepath.Join(dir, "providers")
	cfg.General.ChunksDir = filepath.Join(dir, "chunks")
	return NewServer(cfg, "127.0.0.1:0"), cfg
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("got %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}

func TestGetProviders(t *testing.T) {
	s, cfg := testServer(t)

	if err := os.MkdirAll(cfg.General.ProvidersDir, 0755); err != nil {
		t.Fatal(err)
	}
	awsPath := filepath.Join(cfg.General.ProvidersDir, "aws.txt")
	if err := os.WriteFile(awsPath, []byte("192.0.2.0/24\n198.51.100.0/24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/api/v1/providers")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var response []ProviderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(response) != 6 {
		t.Fatalf("got %d providers, want 6", len(response))
	}

	// Sorted by name: aws first
	if response[0].Name != "aws" || !response[0].Exists || response[0].Entries != 2 {
		t.Errorf("unexpected aws entry: %+v", response[0])
	}
	for _, p := range response[1:] {
		if p.Exists {
			t.Errorf("provider %s has no list file but reports exists", p.Name)
		}
	}
}

func TestGetProviderList(t *testing.T) {
	s, cfg := testServer(t)

	if err := os.MkdirAll(cfg.General.ProvidersDir, 0755); err != nil {
		t.Fatal(err)
	}
	body := "192.0.2.0/24\n"
	if err := os.WriteFile(filepath.Join(cfg.General.ProvidersDir, "aws.txt"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/api/v1/providers/aws")
	if rec.Code != http.StatusOK || rec.Body.String() != body {
		t.Errorf("got %d %q, want 200 %q", rec.Code, rec.Body.String(), body)
	}

	if rec := get(t, s, "/api/v1/providers/tor"); rec.Code != http.StatusNotFound {
		t.Errorf("unfetched provider: got %d, want 404", rec.Code)
	}
	if rec := get(t, s, "/api/v1/providers/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown provider: got %d, want 404", rec.Code)
	}
}

func TestGetChunks(t *testing.T) {
	s, cfg := testServer(t)

	awsDir := filepath.Join(cfg.General.ChunksDir, "aws")
	if err := os.MkdirAll(awsDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"aws-part-002.txt", "aws-part-001.txt"} {
		if err := os.WriteFile(filepath.Join(awsDir, name), []byte("192.0.2.0/24\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rec := get(t, s, "/api/v1/chunks")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var response []ChunkSetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(response) != 1 || response[0].Provider != "aws" {
		t.Fatalf("unexpected chunk index: %+v", response)
	}
	if len(response[0].Parts) != 2 || response[0].Parts[0] != "aws-part-001.txt" {
		t.Errorf("parts must be sorted: %+v", response[0].Parts)
	}
}

func TestGetChunk(t *testing.T) {
	s, cfg := testServer(t)

	awsDir := filepath.Join(cfg.General.ChunksDir, "aws")
	if err := os.MkdirAll(awsDir, 0755); err != nil {
		t.Fatal(err)
	}
	body := "192.0.2.0/24\n"
	if err := os.WriteFile(filepath.Join(awsDir, "aws-part-001.txt"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/api/v1/chunks/aws/aws-part-001.txt")
	if rec.Code != http.StatusOK || rec.Body.String() != body {
		t.Errorf("got %d %q, want 200 %q", rec.Code, rec.Body.String(), body)
	}

	if rec := get(t, s, "/api/v1/chunks/aws/aws-part-099.txt"); rec.Code != http.StatusNotFound {
		t.Errorf("missing chunk: got %d, want 404", rec.Code)
	}
	if rec := get(t, s, "/api/v1/chunks/aws/..%2fsecret"); rec.Code != http.StatusNotFound {
		t.Errorf("traversal attempt: got %d, want 404", rec.Code)
	}
}
