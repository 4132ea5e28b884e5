package render

import (
	"strings"

	"github.com/charmbracelet/glamour/styles"
)

// Markdown themes
const (
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeTokyoNight = "tokyonight"
	ThemeDracula    = "dracula"
	ThemePink       = "pink"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// standardStyles maps theme names to glamour's built-in style names
var standardStyles = map[string]string{
	ThemeDark:       styles.DarkStyle,
	ThemeLight:      styles.LightStyle,
	ThemeTokyoNight: styles.TokyoNightStyle,
	"tokyo-night":   styles.TokyoNightStyle,
	ThemeDracula:    styles.DraculaStyle,
	ThemePink:       styles.PinkStyle,
	ThemeNoTTY:      styles.NoTTYStyle,
	ThemeASCII:      styles.AsciiStyle,
}

// StandardStyle returns the glamour style name for a theme. The bool is
// false when style is not built in and should be treated as a file path.
func StandardStyle(style string) (string, bool) {
	name, ok := standardStyles[strings.ToLower(strings.TrimSpace(style))]
	return name, ok
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the built-in markdown themes
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemePink, Description: "Pink accents"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
