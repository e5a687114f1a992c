package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// New is the huh theme used by pdfqa prompts.
func New() *huh.Theme {
	t := huh.ThemeDracula()

	light := catppuccin.Latte
	dark := catppuccin.Mocha
	var (
		blue     = lipgloss.AdaptiveColor{Light: light.Blue().Hex, Dark: dark.Blue().Hex}
		subtext0 = lipgloss.AdaptiveColor{Light: light.Subtext0().Hex, Dark: dark.Subtext0().Hex}
		overlay1 = lipgloss.AdaptiveColor{Light: light.Overlay1().Hex, Dark: dark.Overlay1().Hex}
	)

	f := &t.Focused
	f.Title = f.Title.Foreground(blue)
	f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(overlay1)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(subtext0)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(overlay1)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(subtext0)
	t.Help.FullKey = t.Help.FullKey.Foreground(subtext0)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(overlay1)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(subtext0)

	return t
}
