// Package ui provides the visual styling for the gradnet TUI.
// School colors (navy and gold) with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f5f5f2")
	LightForeground = lipgloss.Color("#16243d") // Navy
	LightPrimary    = lipgloss.Color("#16243d")
	LightAccent     = lipgloss.Color("#c9a227") // Gold
	LightSecondary  = lipgloss.Color("#e4e2da")
	LightMuted      = lipgloss.Color("#8a8f98")
	LightBorder     = lipgloss.Color("#d8d6ce")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#101828")
	DarkForeground = lipgloss.Color("#ececec")
	DarkPrimary    = lipgloss.Color("#e3b93e") // Gold (flipped)
	DarkAccent     = lipgloss.Color("#2b3c5c")
	DarkSecondary  = lipgloss.Color("#1a2742")
	DarkMuted      = lipgloss.Color("#6b7485")
	DarkBorder     = lipgloss.Color("#2b3650")
	DarkCard       = lipgloss.Color("#17233a")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e05252")
	Success     = lipgloss.Color("#63a65a")
	Warning     = lipgloss.Color("#e0a62e")
	Info        = lipgloss.Color("#4a90d9")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName maps a config theme value to a Theme. Unknown values
// fall through to terminal detection.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	}
	return DetectTheme()
}

// DetectTheme picks a theme from the terminal environment.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; low background indices
	// are dark terminals.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("GRADNET_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	App     lipgloss.Style
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Navigation
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Cards and lists
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Divider      lipgloss.Style
	Badge        lipgloss.Style

	// Chat
	Prompt        lipgloss.Style
	UserMessage   lipgloss.Style
	AgentResponse lipgloss.Style
	Spinner       lipgloss.Style

	// Overlays and toasts
	Overlay lipgloss.Style
	Toast   lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		App: lipgloss.NewStyle().
			Background(theme.Background).
			Foreground(theme.Foreground),

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		ActiveTab: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 1).
			Bold(true).
			Underline(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Card: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		SelectedCard: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		UserMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		AgentResponse: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Overlay: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary),

		Toast: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Logo returns the gradnet wordmark
func Logo(s Styles) string {
	logo := `
   __ _ _ __ __ _  __| |_ __   ___| |_
  / _` + "`" + ` | '__/ _` + "`" + ` |/ _` + "`" + ` | '_ \ / _ \ __|
 | (_| | | | (_| | (_| | | | |  __/ |_
  \__, |_|  \__,_|\__,_|_| |_|\___|\__|
  |___/
`
	return s.Title.Foreground(s.Theme.Primary).Render(logo)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
