package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/entra-tools/ip-block-lists/internal/chunk"
	"github.com/entra-tools/ip-block-lists/internal/config"
	"github.com/entra-tools/ip-block-lists/internal/providers"
)

// Handler serves the read-only list-publishing endpoints.
type Handler struct {
	cfg   *config.Config
	table map[string]providers.Provider
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg:   cfg,
		table: cfg.ProviderTable(),
	}
}

// ProviderResponse represents a provider in API responses
type ProviderResponse struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	File    string `json:"file"`
	Entries int    `json:"entries"`
	Exists  bool   `json:"exists"`
}

// ChunkSetResponse represents one provider's chunk set in API responses
type ChunkSetResponse struct {
	Provider string   `json:"provider"`
	Parts    []string `json:"parts"`
}

// GetProviders returns the provider table with the state of each list file.
func (h *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	response := make([]ProviderResponse, 0, len(h.table))
	for _, name := range providers.Names(h.table) {
		p := h.table[name]
		path := h.cfg.ProviderOutputPath(p)

		entry := ProviderResponse{Name: p.Name, URL: p.URL, File: path}
		if entries, err := chunk.ReadEntries(path); err == nil {
			entry.Exists = true
			entry.Entries = len(entries)
		}
		response = append(response, entry)
	}

	WriteJSON(w, response)
}

// GetProviderList returns the raw canonical list body of a provider.
func (h *Handler) GetProviderList(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	p, ok := h.table[name]
	if !ok {
		WriteNotFound(w, fmt.Sprintf("Provider '%s' not found", name))
		return
	}

	content, err := os.ReadFile(h.cfg.ProviderOutputPath(p))
	if err != nil {
		WriteNotFound(w, fmt.Sprintf("No list has been fetched for provider '%s'", name))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(content)
}

// GetChunks returns the index of chunk sets under the chunks directory.
func (h *Handler) GetChunks(w http.ResponseWriter, r *http.Request) {
	response := make([]ChunkSetResponse, 0)

	dirs, err := os.ReadDir(h.cfg.General.ChunksDir)
	if err != nil {
		// No chunks yet
		WriteJSON(w, response)
		return
	}

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		parts, err := filepath.Glob(filepath.Join(h.cfg.General.ChunksDir, dir.Name(), "*.txt"))
		if err != nil {
			continue
		}
		sort.Strings(parts)

		set := ChunkSetResponse{Provider: dir.Name(), Parts: make([]string, 0, len(parts))}
		for _, part := range parts {
			set.Parts = append(set.Parts, filepath.Base(part))
		}
		response = append(response, set)
	}

	sort.Slice(response, func(i, j int) bool { return response[i].Provider < response[j].Provider })
	WriteJSON(w, response)
}

// GetChunk returns the raw body of a single chunk file.
func (h *Handler) GetChunk(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	part := chi.URLParam(r, "part")

	if !safePathComponent(provider) || !safePathComponent(part) {
		WriteNotFound(w, "Chunk not found")
		return
	}

	content, err := os.ReadFile(filepath.Join(h.cfg.General.ChunksDir, provider, part))
	if err != nil {
		WriteNotFound(w, fmt.Sprintf("Chunk '%s/%s' not found", provider, part))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(content)
}

// safePathComponent rejects path components that could escape the chunks
// directory.
func safePathComponent(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\")
}
