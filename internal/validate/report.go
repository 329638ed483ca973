package validate

import (
	"fmt"
	"strings"
)

// maxShown caps per-category diagnostics in a printed report.
const maxShown = 10

// Print writes the per-file report to stdout. With verbose set, duplicate
// values are listed as well.
func (r *Report) Print(verbose bool) {
	fmt.Printf("\n%s\n", r.File)
	fmt.Println(strings.Repeat("-", len(r.File)))
	fmt.Printf("  Total lines:    %d\n", r.TotalLines)
	fmt.Printf("  Valid CIDRs:    %d\n", r.ValidCIDRs)
	fmt.Printf("  Invalid CIDRs:  %d\n", r.InvalidCIDRs)
	fmt.Printf("  Duplicates:     %d\n", r.Duplicates)

	if len(r.Errors) > 0 {
		fmt.Println("\n  Errors:")
		for i, e := range r.Errors {
			if i >= maxShown {
				break
			}
			fmt.Printf("    Line %d: %s - %s\n", e.Line, e.Content, e.Message)
		}
		if len(r.Errors) > maxShown {
			fmt.Printf("    ... and %d more errors\n", len(r.Errors)-maxShown)
		}
	}

	if verbose && len(r.DuplicateEntries) > 0 {
		fmt.Println("\n  Duplicates found:")
		for i, dup := range r.DuplicateEntries {
			if i >= maxShown {
				break
			}
			fmt.Printf("    %s\n", dup)
		}
		if len(r.DuplicateEntries) > maxShown {
			fmt.Printf("    ... and %d more\n", len(r.DuplicateEntries)-maxShown)
		}
	}

	if len(r.Overlaps) > 0 {
		fmt.Println("\n  Overlaps found:")
		for i, overlap := range r.Overlaps {
			if i >= maxShown {
				break
			}
			fmt.Printf("    %s\n", overlap)
		}
		if len(r.Overlaps) > maxShown {
			fmt.Printf("    ... and %d more\n", len(r.Overlaps)-maxShown)
		}
	}
}

// PrintSummary writes the aggregate summary across all validated files.
func PrintSummary(reports []*Report) {
	totalValid := 0
	totalErrors := 0
	totalDuplicates := 0
	for _, r := range reports {
		totalValid += r.ValidCIDRs
		totalErrors += r.InvalidCIDRs
		totalDuplicates += r.Duplicates
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("Summary")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Files validated: %d\n", len(reports))
	fmt.Printf("Total valid CIDRs: %d\n", totalValid)
	fmt.Printf("Total errors: %d\n", totalErrors)
	fmt.Printf("Total duplicates: %d\n", totalDuplicates)
}
