package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/entra-tools/ip-block-lists/internal/commands"
	"github.com/entra-tools/ip-block-lists/internal/log"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "ip-block-lists.conf", "Path to configuration file (optional)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "IP Block List Manager\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  fetch [providers...]    Fetch fresh IP ranges from provider APIs\n")
		fmt.Fprintf(os.Stderr, "  validate <paths...>     Validate CIDR format and detect duplicates\n")
		fmt.Fprintf(os.Stderr, "  chunk <input> <outdir>  Split large CIDR files into chunks\n")
		fmt.Fprintf(os.Stderr, "  serve                   Publish generated lists over HTTP\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateFetchCommand(),
		commands.CreateValidateCommand(),
		commands.CreateChunkCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("%v", err)
			}

			os.Exit(0)
		}
	}

	log.Errorf("Unknown subcommand: %s", subcommand)
	flag.Usage()
	os.Exit(1)
}
