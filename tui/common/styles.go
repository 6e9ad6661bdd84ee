package common

import "github.com/charmbracelet/lipgloss"

type palette struct {
	bg, surface, border, text, muted, accent, sidebar lipgloss.Color
}

var (
	lightPalette = palette{
		bg:      lipgloss.Color("#F3F4F6"),
		surface: lipgloss.Color("#FFFFFF"),
		border:  lipgloss.Color("#D1D5DB"),
		text:    lipgloss.Color("#2A2D34"),
		muted:   lipgloss.Color("#6B7280"),
		accent:  lipgloss.Color("#4F8EF7"),
		sidebar: lipgloss.Color("#2A2D34"),
	}
	darkPalette = palette{
		bg:      lipgloss.Color("#111827"),
		surface: lipgloss.Color("#1F2937"),
		border:  lipgloss.Color("#45475A"),
		text:    lipgloss.Color("#CAD3F5"),
		muted:   lipgloss.Color("#6E738D"),
		accent:  lipgloss.Color("#7DC4E4"),
		sidebar: lipgloss.Color("#181926"),
	}
)

// Theme groups every style the views use. Build it with NewTheme.
type Theme struct {
	Dark bool

	// AppTitle styles the "Flick" heading.
	AppTitle lipgloss.Style
	// Sidebar frames the navigation column.
	Sidebar lipgloss.Style
	// MenuActive highlights the current view in the sidebar.
	MenuActive lipgloss.Style
	// MenuInactive styles the other sidebar entries.
	MenuInactive lipgloss.Style
	// CreateButton styles the "Create Post" entry.
	CreateButton lipgloss.Style

	Heading   lipgloss.Style
	Caption   lipgloss.Style
	Timestamp lipgloss.Style
	Muted     lipgloss.Style

	// SelectedCard highlights the post under the cursor.
	SelectedCard lipgloss.Style
	// UnselectedCard gives other posts a subtle border.
	UnselectedCard lipgloss.Style

	Liked lipgloss.Style
	Saved lipgloss.Style

	// Modal frames confirmation dialogs.
	Modal lipgloss.Style

	StatusBar lipgloss.Style
	Confirm   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
}

// NewTheme returns the light or dark theme.
func NewTheme(dark bool) Theme {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return Theme{
		Dark: dark,
		AppTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			Padding(1, 2, 0, 1),
		Sidebar: lipgloss.NewStyle().
			Background(p.sidebar).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(1, 2).
			Width(24),
		MenuActive: lipgloss.NewStyle().
			Background(lipgloss.Color("#2563EB")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1).
			Width(20),
		MenuInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Width(20),
		CreateButton: lipgloss.NewStyle().
			Background(lipgloss.Color("#4F8EF7")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1).
			Width(20),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			MarginBottom(1),
		Caption: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text),
		Timestamp: lipgloss.NewStyle().
			Foreground(p.muted),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(0, 1),
		UnselectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Liked: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true),
		Saved: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EAB308")).
			Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(1, 3),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(1, 0, 0, 0),
		Confirm: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F")).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true),
	}
}
