// Package validate checks CIDR list files for syntactic correctness and
// internal duplication.
package validate

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yl2chen/cidranger"

	"github.com/entra-tools/ip-block-lists/internal/cidr"
	"github.com/entra-tools/ip-block-lists/internal/log"
	"github.com/entra-tools/ip-block-lists/internal/utils"
)

// InvalidEntry records one unparseable line.
type InvalidEntry struct {
	Line    int
	Content string
	Message string
}

// Report holds the validation results for a single file.
type Report struct {
	File         string
	TotalLines   int
	ValidCIDRs   int
	InvalidCIDRs int
	Duplicates   int
	Errors       []InvalidEntry

	// DuplicateEntries holds the normalized values seen more than once,
	// sorted (not in file order).
	DuplicateEntries []string

	// Overlaps holds "inner contained in outer" diagnostics, sorted.
	// Populated only when overlap checking was requested.
	Overlaps []string
}

// Options controls optional validation diagnostics.
type Options struct {
	// CheckOverlaps reports entries fully contained in another entry of the
	// same file. Diagnostic only: it affects neither counts nor exit status.
	CheckOverlaps bool
}

// ValidateFile scans every line of a single list file. Validation errors are
// accumulated into the report, never returned: the returned error covers I/O
// only.
func ValidateFile(path string, opts Options) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer utils.CloseOrWarn(file)

	report := &Report{File: path}
	seen := make(map[string]bool)
	duplicates := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		report.TotalLines++
		line := strings.TrimSpace(scanner.Text())

		if cidr.IsSkippable(line) {
			continue
		}

		normalized, err := cidr.Normalize(line)
		if err != nil {
			report.InvalidCIDRs++
			report.Errors = append(report.Errors, InvalidEntry{
				Line:    lineNum,
				Content: line,
				Message: err.Error(),
			})
			continue
		}

		if seen[normalized] {
			report.Duplicates++
			duplicates[normalized] = true
		} else {
			seen[normalized] = true
			report.ValidCIDRs++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	for dup := range duplicates {
		report.DuplicateEntries = append(report.DuplicateEntries, dup)
	}
	sort.Strings(report.DuplicateEntries)

	if opts.CheckOverlaps {
		report.Overlaps = findOverlaps(seen)
	}

	return report, nil
}

// findOverlaps reports every network strictly contained within another,
// shorter-prefix network of the same file.
func findOverlaps(networks map[string]bool) []string {
	ranger := cidranger.NewPCTrieRanger()
	nets := make(map[string]*net.IPNet, len(networks))

	for s := range networks {
		_, ipNet, err := net.ParseCIDR(s)
		if err != nil {
			continue
		}
		nets[s] = ipNet
		if err := ranger.Insert(cidranger.NewBasicRangerEntry(*ipNet)); err != nil {
			log.Debugf("Skipping %s in overlap check: %v", s, err)
		}
	}

	var overlaps []string
	for s, ipNet := range nets {
		covered, err := ranger.CoveredNetworks(*ipNet)
		if err != nil {
			continue
		}
		for _, entry := range covered {
			inner := entry.Network()
			if inner.String() == s {
				continue
			}
			overlaps = append(overlaps, fmt.Sprintf("%s contained in %s", inner.String(), s))
		}
	}
	sort.Strings(overlaps)
	return overlaps
}

// CollectFiles expands the given paths to the list of files to validate.
// Directories contribute their non-recursive *.txt members; a missing path
// is a warning, not an error. The result is sorted.
func CollectFiles(paths []string) []string {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			log.Warnf("%s does not exist", path)
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(path, "*.txt"))
		if err != nil {
			log.Warnf("failed to list %s: %v", path, err)
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}
