// Package chunk splits oversized CIDR list files into size-bounded parts.
package chunk

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/entra-tools/ip-block-lists/internal/cidr"
	"github.com/entra-tools/ip-block-lists/internal/log"
	"github.com/entra-tools/ip-block-lists/internal/utils"
)

// Options controls how a source list is partitioned.
type Options struct {
	// Size is the maximum number of entries per chunk.
	Size int

	// Prefix overrides the output filename prefix. Empty means the source
	// file's base name without extension.
	Prefix string

	// FilenameTemplate renders part filenames from {prefix} and {index}.
	FilenameTemplate string

	// DryRun reports intended output without writing any file.
	DryRun bool
}

// ReadEntries reads the usable entries of a list file, in order. Blank lines
// and comments are excluded.
func ReadEntries(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer utils.CloseOrWarn(file)

	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if cidr.IsSkippable(line) {
			continue
		}
		entries = append(entries, strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	return entries, nil
}

// Split partitions entries into consecutive groups of at most size,
// preserving order across group boundaries.
func Split(entries []string, size int) [][]string {
	if len(entries) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(entries)+size-1)/size)
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[start:end])
	}
	return chunks
}

// PartFilename renders the filename of the 1-based part number.
func PartFilename(template, prefix string, part int) string {
	t := fasttemplate.New(template, "{", "}")
	return t.ExecuteString(map[string]interface{}{
		"prefix": prefix,
		"index":  fmt.Sprintf("%03d", part),
	})
}

// ChunkFile splits a source list into part files inside outDir and returns
// the ordered output paths. Dry-run returns the same path list without
// writing. A source with zero usable entries yields a warning and no paths.
func ChunkFile(inputPath, outDir string, opts Options) ([]string, error) {
	entries, err := ReadEntries(inputPath)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		log.Warnf("No CIDRs found in %s", inputPath)
		return nil, nil
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = stem(inputPath)
	}

	var outputPaths []string
	for i, part := range Split(entries, opts.Size) {
		outputPath := filepath.Join(outDir, PartFilename(opts.FilenameTemplate, prefix, i+1))

		if opts.DryRun {
			fmt.Printf("Would create: %s (%d CIDRs)\n", outputPath, len(part))
		} else {
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return outputPaths, fmt.Errorf("failed to create output directory: %v", err)
			}
			if err := os.WriteFile(outputPath, []byte(strings.Join(part, "\n")+"\n"), 0644); err != nil {
				return outputPaths, fmt.Errorf("failed to write chunk %s: %v", outputPath, err)
			}
			fmt.Printf("Created: %s (%d CIDRs)\n", outputPath, len(part))
		}

		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// ChunkAllProviders scans providersDir and chunks every *.txt file whose
// entry count exceeds opts.Size into its own subdirectory of chunksDir.
// Files at or below the threshold need no action; empty files are simply
// reported.
func ChunkAllProviders(providersDir, chunksDir string, opts Options) error {
	if _, err := os.Stat(providersDir); err != nil {
		return fmt.Errorf("providers directory %s does not exist", providersDir)
	}

	files, err := filepath.Glob(filepath.Join(providersDir, "*.txt"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %v", providersDir, err)
	}
	sort.Strings(files)

	for _, file := range files {
		entries, err := ReadEntries(file)
		if err != nil {
			log.Errorf("Skipping %s: %v", file, err)
			continue
		}

		if len(entries) <= opts.Size {
			fmt.Printf("%s (%d CIDRs) - no chunking needed\n", filepath.Base(file), len(entries))
			continue
		}

		outDir := filepath.Join(chunksDir, stem(file))
		fmt.Printf("\n%s (%d CIDRs) -> %s/\n", filepath.Base(file), len(entries), outDir)

		fileOpts := opts
		fileOpts.Prefix = stem(file)
		if _, err := ChunkFile(file, outDir, fileOpts); err != nil {
			log.Errorf("Failed to chunk %s: %v", file, err)
		}
	}

	return nil
}

// stem returns the base name of a path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
