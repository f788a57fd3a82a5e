package sink

import (
	"bytes"
	"encoding/xml"
	"slices"
)

// Theme is a colour scheme for SVG output.
type Theme struct {
	Name       string
	Background string
	Stroke     string
	Text       string
	// Fills are used per nesting level, cycling when levels exceed them.
	Fills []string
}

var themes = map[string]Theme{
	"light": {
		Name:       "light",
		Background: "#ffffff",
		Stroke:     "#334155",
		Text:       "#0f172a",
		Fills:      []string{"#bfdbfe", "#fde68a", "#bbf7d0", "#fecaca"},
	},
	"dark": {
		Name:       "dark",
		Background: "#0f172a",
		Stroke:     "#94a3b8",
		Text:       "#f1f5f9",
		Fills:      []string{"#1e3a8a", "#854d0e", "#166534", "#991b1b"},
	},
}

// DefaultTheme is used when no theme is requested.
const DefaultTheme = "light"

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the available themes.
func ThemeNames() []string {
	out := make([]string, 0, len(themes))
	for k := range themes {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func (t Theme) fill(level int) string {
	if len(t.Fills) == 0 {
		return "none"
	}
	return t.Fills[level%len(t.Fills)]
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
