package commands

import (
	"io"
	"log/slog"
	"time"
)

type Context struct {
	Timeout time.Duration
	Logger  *slog.Logger
	Stdout  io.Writer
}

var Cli struct {
	Timeout  time.Duration `help:"Timeout for fetching rows." default:"60s"`
	LogLevel string        `name:"log-level" help:"Log level." default:"info" enum:"debug,info,warn,error"`
	LogFile  string        `name:"log-file" help:"Append logs to this file, or - for stderr. Logs are discarded when unset."`

	Render      RenderCmd      `cmd:"" help:"Render a chart as SVG, text, a row table, JSON or YAML."`
	TUI         TUICmd         `cmd:"" name:"tui" help:"Interactive chart with hover highlighting."`
	Palette     PaletteCmd     `cmd:"" help:"Print the colors allocated to N categories."`
	FormatQuery FormatQueryCmd `cmd:"" help:"Format a measure query."`
}
