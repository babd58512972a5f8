// Package ui holds the colours and table printer used by the CLI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Table prints a simple aligned table to w.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var header, sep strings.Builder
	header.WriteString("  ")
	sep.WriteString("  ")
	for i, h := range headers {
		fmt.Fprintf(&header, "%-*s  ", widths[i], h)
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	Subtle.Fprintln(w, strings.TrimRight(header.String(), " "))
	Subtle.Fprintln(w, strings.TrimRight(sep.String(), " "))

	for _, row := range clip(rows, len(widths)) {
		var line strings.Builder
		line.WriteString("  ")
		for i, cell := range row {
			fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// clip trims every row to n cells.
func clip(rows [][]string, n int) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) > n {
			r = r[:n]
		}
		out[i] = r
	}
	return out
}

// Swatch renders a tag in the terminal colour closest to a CSS colour name
// from the graph settings.
func Swatch(cssColor, text string) string {
	if c, ok := palette[strings.ToLower(cssColor)]; ok {
		return c.Sprint(text)
	}
	return text
}

var palette = map[string]*color.Color{
	"orange":         color.New(color.FgHiYellow),
	"goldenrod":      color.New(color.FgYellow),
	"royalblue":      color.New(color.FgBlue),
	"crimson":        color.New(color.FgHiRed),
	"red":            color.New(color.FgRed),
	"mediumseagreen": color.New(color.FgGreen),
	"green":          color.New(color.FgGreen),
	"slategray":      color.New(color.FgHiBlack),
	"lightgray":      color.New(color.FgWhite),
	"blue":           color.New(color.FgBlue),
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
