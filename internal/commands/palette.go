package commands

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"

	"github.com/akasprzok/parcoords/internal/palette"
)

type PaletteCmd struct {
	Count int `arg:"" name:"count" help:"Number of categories."`
}

func (p *PaletteCmd) Run(ctx *Context) error {
	if p.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", p.Count)
	}
	for i, hex := range palette.Allocate(p.Count) {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(runes.FullBlock))
		if _, err := fmt.Fprintf(ctx.Stdout, "%s %2d %s\n", swatch, i, hex); err != nil {
			return err
		}
	}
	return nil
}
