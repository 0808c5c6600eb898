package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// DefaultTheme is used when no theme (or an unknown theme) is requested
const DefaultTheme = "charm"

// Theme defines the color scheme and styles for the picker
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Subtle     lipgloss.AdaptiveColor

	// Component styles
	Prompt       lipgloss.Style // Prompt title ("Context: ")
	Item         lipgloss.Style // Unselected entry
	SelectedItem lipgloss.Style // Entry under the cursor
	Match        lipgloss.Style // Fuzzy-matched runes while filtering
	Answer       lipgloss.Style // Confirmed choice echoed after the picker closes
	StatusBar    lipgloss.Style
}

// palette is the minimal set of colors a theme is derived from
type palette struct {
	primary    lipgloss.AdaptiveColor
	accent     lipgloss.AdaptiveColor
	foreground lipgloss.AdaptiveColor
	muted      lipgloss.AdaptiveColor
	errorColor lipgloss.AdaptiveColor
	success    lipgloss.AdaptiveColor
	subtle     lipgloss.AdaptiveColor
}

var palettes = map[string]palette{
	"charm": {
		primary:    lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"},
		accent:     lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"},
		foreground: lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		muted:      lipgloss.AdaptiveColor{Light: "243", Dark: "243"},
		errorColor: lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"},
		success:    lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		subtle:     lipgloss.AdaptiveColor{Light: "241", Dark: "241"},
	},
	"dracula": {
		primary:    lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"},
		accent:     lipgloss.AdaptiveColor{Light: "#ff79c6", Dark: "#ff79c6"},
		foreground: lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"},
		muted:      lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"},
		errorColor: lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"},
		success:    lipgloss.AdaptiveColor{Light: "#50fa7b", Dark: "#50fa7b"},
		subtle:     lipgloss.AdaptiveColor{Light: "#44475a", Dark: "#44475a"},
	},
	"catppuccin": {
		primary:    lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"}, // Mauve
		accent:     lipgloss.AdaptiveColor{Light: "#ea76cb", Dark: "#f5c2e7"}, // Pink
		foreground: lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"},
		muted:      lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#7f849c"},
		errorColor: lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"},
		success:    lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"},
		subtle:     lipgloss.AdaptiveColor{Light: "#7c7f93", Dark: "#585b70"},
	},
	"nord": {
		primary:    lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"}, // Frost blue
		accent:     lipgloss.AdaptiveColor{Light: "#b48ead", Dark: "#b48ead"}, // Aurora purple
		foreground: lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#eceff4"},
		muted:      lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#4c566a"},
		errorColor: lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"},
		success:    lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"},
		subtle:     lipgloss.AdaptiveColor{Light: "#434c5e", Dark: "#434c5e"},
	},
	"gruvbox": {
		primary:    lipgloss.AdaptiveColor{Light: "#af3a03", Dark: "#fe8019"}, // Orange
		accent:     lipgloss.AdaptiveColor{Light: "#b16286", Dark: "#d3869b"},
		foreground: lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#ebdbb2"},
		muted:      lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#928374"},
		errorColor: lipgloss.AdaptiveColor{Light: "#9d0006", Dark: "#fb4934"},
		success:    lipgloss.AdaptiveColor{Light: "#79740e", Dark: "#b8bb26"},
		subtle:     lipgloss.AdaptiveColor{Light: "#665c54", Dark: "#665c54"},
	},
	"tokyo-night": {
		primary:    lipgloss.AdaptiveColor{Light: "#7aa2f7", Dark: "#7aa2f7"},
		accent:     lipgloss.AdaptiveColor{Light: "#bb9af7", Dark: "#bb9af7"},
		foreground: lipgloss.AdaptiveColor{Light: "#1a1b26", Dark: "#c0caf5"},
		muted:      lipgloss.AdaptiveColor{Light: "#565f89", Dark: "#565f89"},
		errorColor: lipgloss.AdaptiveColor{Light: "#f7768e", Dark: "#f7768e"},
		success:    lipgloss.AdaptiveColor{Light: "#9ece6a", Dark: "#9ece6a"},
		subtle:     lipgloss.AdaptiveColor{Light: "#414868", Dark: "#414868"},
	},
	"solarized": {
		primary:    lipgloss.AdaptiveColor{Light: "#268bd2", Dark: "#268bd2"},
		accent:     lipgloss.AdaptiveColor{Light: "#6c71c4", Dark: "#6c71c4"},
		foreground: lipgloss.AdaptiveColor{Light: "#002b36", Dark: "#839496"},
		muted:      lipgloss.AdaptiveColor{Light: "#586e75", Dark: "#586e75"},
		errorColor: lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#dc322f"},
		success:    lipgloss.AdaptiveColor{Light: "#859900", Dark: "#859900"},
		subtle:     lipgloss.AdaptiveColor{Light: "#657b83", Dark: "#657b83"},
	},
	"monokai": {
		primary:    lipgloss.AdaptiveColor{Light: "#66d9ef", Dark: "#66d9ef"},
		accent:     lipgloss.AdaptiveColor{Light: "#ae81ff", Dark: "#ae81ff"},
		foreground: lipgloss.AdaptiveColor{Light: "#272822", Dark: "#f8f8f2"},
		muted:      lipgloss.AdaptiveColor{Light: "#75715e", Dark: "#75715e"},
		errorColor: lipgloss.AdaptiveColor{Light: "#f92672", Dark: "#f92672"},
		success:    lipgloss.AdaptiveColor{Light: "#a6e22e", Dark: "#a6e22e"},
		subtle:     lipgloss.AdaptiveColor{Light: "#49483e", Dark: "#49483e"},
	},
}

// newTheme derives all component styles from a palette
func newTheme(name string, p palette) *Theme {
	t := &Theme{
		Name:       name,
		Primary:    p.primary,
		Accent:     p.accent,
		Foreground: p.foreground,
		Muted:      p.muted,
		Error:      p.errorColor,
		Success:    p.success,
		Subtle:     p.subtle,
	}

	t.Prompt = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	// Left padding matches the width of the selection border so entries
	// don't shift horizontally when the cursor moves.
	t.Item = lipgloss.NewStyle().
		Foreground(t.Foreground).
		PaddingLeft(2)

	t.SelectedItem = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Foreground(t.Accent).
		Bold(true).
		PaddingLeft(1)

	t.Match = lipgloss.NewStyle().
		Foreground(t.Primary).
		Underline(true)

	t.Answer = lipgloss.NewStyle().
		Foreground(t.Success)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted)

	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	return newTheme("charm", palettes["charm"])
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	p, ok := palettes[name]
	if !ok {
		return ThemeCharm()
	}
	return newTheme(name, p)
}

// AvailableThemes returns a sorted list of available theme names
func AvailableThemes() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
