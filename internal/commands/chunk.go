package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/entra-tools/ip-block-lists/internal/chunk"
	"github.com/entra-tools/ip-block-lists/internal/config"
)

func CreateChunkCommand() *ChunkCommand {
	c := &ChunkCommand{
		fs: flag.NewFlagSet("chunk", flag.ExitOnError),
	}
	c.fs.IntVar(&c.size, "size", 0, "Maximum CIDRs per chunk (default from config)")
	c.fs.StringVar(&c.prefix, "prefix", "", "Prefix for chunk filenames (default: input filename)")
	c.fs.BoolVar(&c.dryRun, "dry-run", false, "Show what would be done without writing files")
	c.fs.BoolVar(&c.allProviders, "all-providers", false, "Chunk all provider files that exceed the chunk size")
	return c
}

type ChunkCommand struct {
	fs           *flag.FlagSet
	cfg          *config.Config
	size         int
	prefix       string
	dryRun       bool
	allProviders bool
}

func (c *ChunkCommand) Name() string {
	return c.fs.Name()
}

func (c *ChunkCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		c.cfg = cfg
	}

	if c.size == 0 {
		c.size = c.cfg.General.ChunkSize
	}
	if c.size < 1 {
		return fmt.Errorf("chunk size must be >= 1")
	}

	if !c.allProviders && c.fs.NArg() < 2 {
		return fmt.Errorf("usage: chunk [flags] <input-file> <output-dir>")
	}

	return nil
}

func (c *ChunkCommand) Run() error {
	opts := chunk.Options{
		Size:             c.size,
		Prefix:           c.prefix,
		FilenameTemplate: c.cfg.General.ChunkFilenameTemplate,
		DryRun:           c.dryRun,
	}

	if c.allProviders {
		return chunk.ChunkAllProviders(c.cfg.General.ProvidersDir, c.cfg.General.ChunksDir, opts)
	}

	inputPath := c.fs.Arg(0)
	outputDir := c.fs.Arg(1)

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("%s does not exist", inputPath)
	}

	outputFiles, err := chunk.ChunkFile(inputPath, outputDir, opts)
	if err != nil {
		return err
	}
	if len(outputFiles) == 0 {
		return fmt.Errorf("no chunks were produced from %s", inputPath)
	}
	return nil
}
