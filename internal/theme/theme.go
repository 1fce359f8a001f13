// Package theme provides the colors used by the report and the review UI.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used when output is styled.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // Foreground color for text on Accent background
	Border    lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	KeepFg    lipgloss.Color
	RemoveFg  lipgloss.Color
	ErrorFg   lipgloss.Color
	Cyan      lipgloss.Color
	Highlight lipgloss.Color
}

// Theme names.
const (
	DraculaName      = "dracula"
	DraculaLightName = "dracula-light"
	NordName         = "nord"
	GruvboxDarkName  = "gruvbox-dark"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"), // Purple
		AccentFg:  lipgloss.Color("#282A36"),
		Border:    lipgloss.Color("#6272A4"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		KeepFg:    lipgloss.Color("#50FA7B"), // Green
		RemoveFg:  lipgloss.Color("#FFB86C"), // Orange
		ErrorFg:   lipgloss.Color("#FF5555"),
		Cyan:      lipgloss.Color("#8BE9FD"),
		Highlight: lipgloss.Color("#F1FA8C"),
	}
}

// DraculaLight returns the Dracula theme adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#c6dbe5"),
		AccentFg:  lipgloss.Color("#24292F"),
		Border:    lipgloss.Color("#D0D7DE"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		KeepFg:    lipgloss.Color("#059669"),
		RemoveFg:  lipgloss.Color("#D97706"),
		ErrorFg:   lipgloss.Color("#DC2626"),
		Cyan:      lipgloss.Color("#0891B2"),
		Highlight: lipgloss.Color("#CA8A04"),
	}
}

// Nord returns the arctic, north-bluish theme.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		Border:    lipgloss.Color("#4C566A"),
		MutedFg:   lipgloss.Color("#616E88"),
		TextFg:    lipgloss.Color("#ECEFF4"),
		KeepFg:    lipgloss.Color("#A3BE8C"),
		RemoveFg:  lipgloss.Color("#D08770"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		Cyan:      lipgloss.Color("#8FBCBB"),
		Highlight: lipgloss.Color("#EBCB8B"),
	}
}

// GruvboxDark returns the retro groove dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#FABD2F"),
		AccentFg:  lipgloss.Color("#282828"),
		Border:    lipgloss.Color("#504945"),
		MutedFg:   lipgloss.Color("#928374"),
		TextFg:    lipgloss.Color("#EBDBB2"),
		KeepFg:    lipgloss.Color("#B8BB26"),
		RemoveFg:  lipgloss.Color("#FE8019"),
		ErrorFg:   lipgloss.Color("#FB4934"),
		Cyan:      lipgloss.Color("#8EC07C"),
		Highlight: lipgloss.Color("#FABD2F"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaLightName:
		return DraculaLight()
	case NordName:
		return Nord()
	case GruvboxDarkName:
		return GruvboxDark()
	default:
		return Dracula()
	}
}

// Normalize returns the canonical theme name if it is supported.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		NordName,
		GruvboxDarkName,
	}
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Keep      lipgloss.Style
	Removable lipgloss.Style
	Muted     lipgloss.Style
	Count     lipgloss.Style
	Error     lipgloss.Style
	Selected  lipgloss.Style
	Border    lipgloss.Style
}

// NewStyles builds the styles of t. With plain set every style renders its
// input unchanged.
func NewStyles(t *Theme, plain bool) Styles {
	if plain || t == nil {
		s := lipgloss.NewStyle()
		return Styles{
			Title: s, Heading: s, Keep: s, Removable: s, Muted: s,
			Count: s, Error: s, Selected: s, Border: s,
		}
	}
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.AccentFg).
			Background(t.Accent).
			Padding(0, 1),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(t.Cyan),
		Keep:      lipgloss.NewStyle().Foreground(t.KeepFg),
		Removable: lipgloss.NewStyle().Foreground(t.RemoveFg),
		Muted:     lipgloss.NewStyle().Foreground(t.MutedFg),
		Count:     lipgloss.NewStyle().Bold(true).Foreground(t.Highlight),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(t.ErrorFg),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(t.AccentFg).Background(t.Accent),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
