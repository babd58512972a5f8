package explore

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cssColors maps the CSS colour keywords most used in graph settings to hex.
var cssColors = map[string]string{
	"black":          "#000000",
	"white":          "#FFFFFF",
	"gray":           "#808080",
	"grey":           "#808080",
	"lightgray":      "#D3D3D3",
	"lightgrey":      "#D3D3D3",
	"darkgray":       "#A9A9A9",
	"slategray":      "#708090",
	"dimgray":        "#696969",
	"red":            "#FF0000",
	"crimson":        "#DC143C",
	"firebrick":      "#B22222",
	"tomato":         "#FF6347",
	"orange":         "#FFA500",
	"darkorange":     "#FF8C00",
	"gold":           "#FFD700",
	"goldenrod":      "#DAA520",
	"yellow":         "#FFFF00",
	"green":          "#008000",
	"lime":           "#00FF00",
	"mediumseagreen": "#3CB371",
	"seagreen":       "#2E8B57",
	"forestgreen":    "#228B22",
	"teal":           "#008080",
	"cyan":           "#00FFFF",
	"blue":           "#0000FF",
	"royalblue":      "#4169E1",
	"steelblue":      "#4682B4",
	"navy":           "#000080",
	"purple":         "#800080",
	"violet":         "#EE82EE",
	"magenta":        "#FF00FF",
	"pink":           "#FFC0CB",
	"brown":          "#A52A2A",
}

// Color converts a CSS colour from the graph settings to a terminal colour.
// Hex values pass through; unknown keywords fall back to no colour.
func Color(css string) lipgloss.TerminalColor {
	css = strings.TrimSpace(strings.ToLower(css))
	if strings.HasPrefix(css, "#") {
		return lipgloss.Color(css)
	}
	if hex, ok := cssColors[css]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.NoColor{}
}
