package formatter

import "github.com/charmbracelet/lipgloss"

// Gruvbox palette, shared by the REPL and the history table.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorPurple = lipgloss.Color("#d3869b")
	colorDim    = lipgloss.Color("#928374")
	colorOrange = lipgloss.Color("#fe8019")
)

var (
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(colorOrange).Bold(true)
	StylePurple = lipgloss.NewStyle().Foreground(colorPurple)
)

// kindColors: recommendations green, questions blue, failures red, dead
// ends yellow, greetings purple.
var kindColors = map[string]lipgloss.Color{
	"recommendation": colorGreen,
	"question":       colorBlue,
	"catalog_error":  colorRed,
	"no_results":     colorYellow,
	"clarification":  colorYellow,
	"no_context":     colorYellow,
	"welcome":        colorPurple,
	"farewell":       colorPurple,
}

// KindStyle returns the style for a reply kind; unknown kinds are dimmed.
func KindStyle(kind string) lipgloss.Style {
	if c, ok := kindColors[kind]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return StyleDim
}

// KindBadge renders a reply kind as a colored label, "--" when unset.
func KindBadge(kind string) string {
	if kind == "" {
		return StyleDim.Render("--")
	}
	return KindStyle(kind).Render(kind)
}

func Dim(text string) string {
	return StyleDim.Render(text)
}
