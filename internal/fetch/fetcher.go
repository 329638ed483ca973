// Package fetch retrieves provider feeds over HTTP and writes the canonical
// per-provider CIDR list files.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/entra-tools/ip-block-lists/internal/config"
	"github.com/entra-tools/ip-block-lists/internal/log"
	"github.com/entra-tools/ip-block-lists/internal/providers"
	"github.com/entra-tools/ip-block-lists/internal/utils"
)

// Result is the outcome of a single provider fetch.
type Result struct {
	Provider string
	// Count is the number of CIDRs written (or that would have been
	// written in dry-run mode). Zero when Err is set.
	Count int
	Err   error
}

// Success reports whether the fetch succeeded.
func (r Result) Success() bool {
	return r.Err == nil
}

// Fetcher downloads provider feeds and persists the parsed CIDR lists.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	providersDir string
	table        map[string]providers.Provider
}

func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: time.Duration(cfg.General.HTTPTimeoutSeconds) * time.Second,
		},
		userAgent:    cfg.General.UserAgent,
		providersDir: cfg.General.ProvidersDir,
		table:        cfg.ProviderTable(),
	}
}

// Providers returns the effective provider table.
func (f *Fetcher) Providers() map[string]providers.Provider {
	return f.table
}

// Fetch downloads, parses and persists a single provider's ranges. Every
// failure mode resolves to a Result; it never panics past this boundary.
// A provider yielding zero CIDRs is treated as a failure (possible upstream
// format change) and its output file is left untouched.
func (f *Fetcher) Fetch(name string, dryRun bool) Result {
	provider, ok := f.table[name]
	if !ok {
		return Result{Provider: name, Err: fmt.Errorf("unknown provider %q", name)}
	}

	log.Infof("Fetching %s from %s...", provider.Name, provider.URL)

	content, err := f.download(provider.URL)
	if err != nil {
		return Result{Provider: name, Err: err}
	}

	parser, ok := providers.ParserFor(provider.Parser)
	if !ok {
		return Result{Provider: name, Err: fmt.Errorf("unknown parser %q", provider.Parser)}
	}

	cidrs, err := parser(content)
	if err != nil {
		return Result{Provider: name, Err: err}
	}

	if len(cidrs) == 0 {
		return Result{Provider: name, Err: fmt.Errorf("no CIDRs found")}
	}

	cidrs = dedupeAndSort(cidrs)

	outputPath := utils.GetAbsolutePath(provider.Output, f.providersDir)

	if dryRun {
		log.Infof("Would write %d CIDRs to %s", len(cidrs), outputPath)
		return Result{Provider: name, Count: len(cidrs)}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return Result{Provider: name, Err: fmt.Errorf("failed to create output directory: %v", err)}
	}

	if err := os.WriteFile(outputPath, []byte(strings.Join(cidrs, "\n")+"\n"), 0644); err != nil {
		return Result{Provider: name, Err: fmt.Errorf("failed to write list file to %s: %v", outputPath, err)}
	}

	log.Infof("Wrote %d CIDRs to %s", len(cidrs), outputPath)
	return Result{Provider: name, Count: len(cidrs)}
}

// FetchAll fetches the named providers one at a time, in order. Each provider
// is attempted exactly once regardless of prior outcomes.
func (f *Fetcher) FetchAll(names []string, dryRun bool) []Result {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		result := f.Fetch(name, dryRun)
		if !result.Success() {
			log.Errorf("Error fetching %s: %v", name, result.Err)
		}
		results = append(results, result)
	}
	return results
}

func (f *Fetcher) download(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %v", url, err)
	}
	defer utils.CloseOrWarn(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	return content, nil
}

func dedupeAndSort(cidrs []string) []string {
	seen := make(map[string]bool, len(cidrs))
	unique := make([]string, 0, len(cidrs))
	for _, c := range cidrs {
		if seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	sort.Strings(unique)
	return unique
}
