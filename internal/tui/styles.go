package tui

import "github.com/charmbracelet/lipgloss"

// Palette holds the theme colors. The original app shipped a light and
// a dark theme toggled at runtime; both live here.
type Palette struct {
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Done      lipgloss.Color
	Cancelled lipgloss.Color
	Separator lipgloss.Color
	Header    lipgloss.Color // completed-section header
	Urgent    lipgloss.Color
	Overdue   lipgloss.Color
	Primary   lipgloss.Color
	AltBg     lipgloss.Color
	CursorBg  lipgloss.Color
	Border    lipgloss.Color
}

var LightPalette = Palette{
	Text:      lipgloss.Color("#1A1A1A"),
	Muted:     lipgloss.Color("#888888"),
	Done:      lipgloss.Color("#95A5A6"),
	Cancelled: lipgloss.Color("#A9A9A9"),
	Separator: lipgloss.Color("#7F8C8D"),
	Header:    lipgloss.Color("#2980B9"),
	Urgent:    lipgloss.Color("#E74C3C"),
	Overdue:   lipgloss.Color("#E67E22"),
	Primary:   lipgloss.Color("#16A085"),
	AltBg:     lipgloss.Color("#F0F0F0"),
	CursorBg:  lipgloss.Color("#D6EAF8"),
	Border:    lipgloss.Color("#CCCCCC"),
}

var DarkPalette = Palette{
	Text:      lipgloss.Color("#EAEAEA"),
	Muted:     lipgloss.Color("#777777"),
	Done:      lipgloss.Color("#6C7A7B"),
	Cancelled: lipgloss.Color("#5E5E5E"),
	Separator: lipgloss.Color("#95A5A6"),
	Header:    lipgloss.Color("#5DADE2"),
	Urgent:    lipgloss.Color("#FF6B6B"),
	Overdue:   lipgloss.Color("#FFB347"),
	Primary:   lipgloss.Color("#4ECDC4"),
	AltBg:     lipgloss.Color("#22262E"),
	CursorBg:  lipgloss.Color("#2C3E50"),
	Border:    lipgloss.Color("#333333"),
}

// palette returns the active theme.
func (m Model) palette() Palette {
	if m.darkMode {
		return DarkPalette
	}
	return LightPalette
}

// Styles built per render from the active palette.

func (p Palette) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(p.Primary).Padding(0, 1)
}

func (p Palette) separatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Separator)
}

func (p Palette) completedHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Header)
}

func (p Palette) doneStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Done).Strikethrough(true)
}

func (p Palette) cancelledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Cancelled)
}

func (p Palette) taskStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Text)
}

func (p Palette) urgentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Urgent).Bold(true)
}

func (p Palette) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Muted)
}

func (p Palette) statusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Border)
}

func (p Palette) modalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
}
