package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Surface   lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Border    lipgloss.Color
	Gain      lipgloss.Color
	Loss      lipgloss.Color
	GoalFill  lipgloss.Color
	GoalEmpty lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Surface:   lipgloss.Color("#313244"),
		Text:      lipgloss.Color("#cdd6f4"),
		Muted:     lipgloss.Color("#a6adc8"),
		Accent:    lipgloss.Color("#cba6f7"),
		AccentAlt: lipgloss.Color("#f9e2af"),
		Border:    lipgloss.Color("#585b70"),
		Gain:      lipgloss.Color("#a6e3a1"),
		Loss:      lipgloss.Color("#f38ba8"),
		GoalFill:  lipgloss.Color("#94e2d5"),
		GoalEmpty: lipgloss.Color("#313244"),
	},
	"dracula": {
		Surface:   lipgloss.Color("#343746"),
		Text:      lipgloss.Color("#f8f8f2"),
		Muted:     lipgloss.Color("#6272a4"),
		Accent:    lipgloss.Color("#ff79c6"),
		AccentAlt: lipgloss.Color("#f1fa8c"),
		Border:    lipgloss.Color("#44475a"),
		Gain:      lipgloss.Color("#50fa7b"),
		Loss:      lipgloss.Color("#ff5555"),
		GoalFill:  lipgloss.Color("#50fa7b"),
		GoalEmpty: lipgloss.Color("#343746"),
	},
	"gruvbox": {
		Surface:   lipgloss.Color("#3c3836"),
		Text:      lipgloss.Color("#ebdbb2"),
		Muted:     lipgloss.Color("#a89984"),
		Accent:    lipgloss.Color("#fabd2f"),
		AccentAlt: lipgloss.Color("#d3869b"),
		Border:    lipgloss.Color("#665c54"),
		Gain:      lipgloss.Color("#b8bb26"),
		Loss:      lipgloss.Color("#fb4934"),
		GoalFill:  lipgloss.Color("#b8bb26"),
		GoalEmpty: lipgloss.Color("#3c3836"),
	},
	"solarized_dark": {
		Surface:   lipgloss.Color("#073642"),
		Text:      lipgloss.Color("#fdf6e3"),
		Muted:     lipgloss.Color("#93a1a1"),
		Accent:    lipgloss.Color("#b58900"),
		AccentAlt: lipgloss.Color("#268bd2"),
		Border:    lipgloss.Color("#586e75"),
		Gain:      lipgloss.Color("#859900"),
		Loss:      lipgloss.Color("#dc322f"),
		GoalFill:  lipgloss.Color("#859900"),
		GoalEmpty: lipgloss.Color("#073642"),
	},
}

const defaultTheme = "catppuccin"

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[defaultTheme]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

type styles struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
	gain   lipgloss.Style
	loss   lipgloss.Style
	panel  lipgloss.Style
	fill   lipgloss.Style
	empty  lipgloss.Style
	header lipgloss.Style
	cell   lipgloss.Style
	border lipgloss.Style
}

func stylesFor(p palette) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		muted:  lipgloss.NewStyle().Foreground(p.Muted),
		accent: lipgloss.NewStyle().Foreground(p.AccentAlt).Bold(true),
		gain:   lipgloss.NewStyle().Foreground(p.Gain).Bold(true),
		loss:   lipgloss.NewStyle().Foreground(p.Loss).Bold(true),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		fill:   lipgloss.NewStyle().Foreground(p.GoalFill),
		empty:  lipgloss.NewStyle().Foreground(p.GoalEmpty),
		header: lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Padding(0, 1),
		cell:   lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		border: lipgloss.NewStyle().Foreground(p.Border),
	}
}
