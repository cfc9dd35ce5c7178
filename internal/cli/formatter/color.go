package formatter

import (
	"fmt"
	"strings"

	"github.com/avendel/fastrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SessionStatusPill returns a colored status indicator for a fasting session.
func SessionStatusPill(status domain.SessionStatus) string {
	switch status {
	case domain.SessionActive:
		return StyleGreen.Render("● Active")
	case domain.SessionPaused:
		return StyleYellow.Render("○ Paused")
	case domain.SessionCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.SessionStopped:
		return StyleDim.Render("✖ Stopped")
	default:
		return StyleDim.Render(string(status))
	}
}

// SessionTypeBadge returns a purple-styled label for the fast type.
func SessionTypeBadge(t domain.SessionType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	if label == "" {
		return StyleDim.Render("--")
	}
	label = strings.ToUpper(label[:1]) + label[1:]
	return StylePurple.Render(label)
}

// StreakFlame returns a colored streak indicator such as "🔥 12".
// Zero streaks render dimmed without the flame.
func StreakFlame(days int) string {
	if days <= 0 {
		return StyleDim.Render("0")
	}
	return StyleYellow.Render(fmt.Sprintf("🔥 %d", days))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
