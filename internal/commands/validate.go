package commands

import (
	"flag"
	"fmt"

	"github.com/entra-tools/ip-block-lists/internal/validate"
)

func CreateValidateCommand() *ValidateCommand {
	c := &ValidateCommand{
		fs: flag.NewFlagSet("validate", flag.ExitOnError),
	}
	c.fs.BoolVar(&c.verbose, "verbose", false, "Show duplicate entries")
	c.fs.BoolVar(&c.quiet, "quiet", false, "Suppress per-file reports")
	c.fs.BoolVar(&c.overlaps, "overlaps", false, "Report entries contained in another entry")
	return c
}

type ValidateCommand struct {
	fs       *flag.FlagSet
	verbose  bool
	quiet    bool
	overlaps bool
}

func (c *ValidateCommand) Name() string {
	return c.fs.Name()
}

func (c *ValidateCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if c.fs.NArg() == 0 {
		return fmt.Errorf("usage: validate [flags] <file|directory>...")
	}

	return nil
}

func (c *ValidateCommand) Run() error {
	files := validate.CollectFiles(c.fs.Args())
	if len(files) == 0 {
		return fmt.Errorf("no files to validate")
	}

	opts := validate.Options{CheckOverlaps: c.overlaps}

	var reports []*validate.Report
	totalErrors := 0

	for _, file := range files {
		report, err := validate.ValidateFile(file, opts)
		if err != nil {
			return err
		}
		reports = append(reports, report)
		totalErrors += report.InvalidCIDRs

		if !c.quiet {
			report.Print(c.verbose)
		}
	}

	if !c.quiet && len(reports) > 1 {
		validate.PrintSummary(reports)
	}

	if totalErrors > 0 {
		return fmt.Errorf("found %d invalid CIDR(s)", totalErrors)
	}
	return nil
}
