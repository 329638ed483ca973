package commands

import (
	"flag"
	"fmt"

	"github.com/entra-tools/ip-block-lists/internal/config"
	"github.com/entra-tools/ip-block-lists/internal/fetch"
	"github.com/entra-tools/ip-block-lists/internal/providers"
)

func CreateFetchCommand() *FetchCommand {
	c := &FetchCommand{
		fs: flag.NewFlagSet("fetch", flag.ExitOnError),
	}
	c.fs.BoolVar(&c.dryRun, "dry-run", false, "Fetch and parse without writing files")
	c.fs.BoolVar(&c.list, "list", false, "List available providers and exit")
	return c
}

type FetchCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	dryRun bool
	list   bool
}

func (c *FetchCommand) Name() string {
	return c.fs.Name()
}

func (c *FetchCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		c.cfg = cfg
	}

	return nil
}

func (c *FetchCommand) Run() error {
	table := c.cfg.ProviderTable()

	if c.list {
		fmt.Println("Available providers:")
		for _, name := range providers.Names(table) {
			fmt.Printf("  %s: %s\n", name, table[name].URL)
		}
		return nil
	}

	names := c.fs.Args()
	if len(names) == 0 {
		names = []string{"all"}
	}
	for _, name := range names {
		if name == "all" {
			names = providers.Names(table)
			break
		}
	}

	fetcher := fetch.NewFetcher(c.cfg)
	results := fetcher.FetchAll(names, c.dryRun)

	successCount := 0
	totalCIDRs := 0
	for _, result := range results {
		if result.Success() {
			successCount++
			totalCIDRs += result.Count
		}
	}

	fmt.Println()
	fmt.Printf("Fetched %d/%d providers\n", successCount, len(results))
	fmt.Printf("Total CIDRs: %d\n", totalCIDRs)
	if c.dryRun {
		fmt.Println("(Dry run - no files were modified)")
	}

	if successCount != len(results) {
		return fmt.Errorf("%d provider(s) failed", len(results)-successCount)
	}
	return nil
}
