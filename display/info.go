package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var infoStyle = lipgloss.NewStyle().
	Bold(false).
	PaddingTop(1).
	PaddingBottom(1).
	Foreground(lipgloss.AdaptiveColor{
		Light: "21",
		Dark:  "33",
	})

// Info goes to stderr so stdout stays scriptable.
func Info(text string) {
	fmt.Fprintln(os.Stderr, infoStyle.Render(text))
}
