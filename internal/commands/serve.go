package commands

import (
	"flag"

	"github.com/entra-tools/ip-block-lists/internal/api"
	"github.com/entra-tools/ip-block-lists/internal/config"
)

func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
	c.fs.StringVar(&c.listen, "listen", "127.0.0.1:8080", "Address to listen on")
	return c
}

type ServeCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	listen string
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
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

func (c *ServeCommand) Run() error {
	server := api.NewServer(c.cfg, c.listen)
	return server.Start()
}
