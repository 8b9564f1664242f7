package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/akasprzok/parcoords/internal/commands"
	"github.com/akasprzok/parcoords/internal/logging"
)

func main() {
	ctx := kong.Parse(&commands.Cli,
		kong.Name("parcoords"),
		kong.Description("Parallel-coordinates charts for the terminal, SVG, JSON and YAML."),
		kong.DefaultEnvars("PARCOORDS"),
	)

	logger, closer, err := logging.Open(commands.Cli.LogFile, commands.Cli.LogLevel)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&commands.Context{
		Timeout: commands.Cli.Timeout,
		Logger:  logger,
		Stdout:  os.Stdout,
	})
	closer.Close()
	ctx.FatalIfErrorf(err)
}
