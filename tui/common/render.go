package common

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/gyokusei/nga-cli/bbcode"
)

// colorNames maps the color words the forum markup uses to terminal colors.
// Unknown names render unstyled rather than guessing.
var colorNames = map[string]string{
	"red":       "#ED8796",
	"blue":      "#7DC4E4",
	"green":     "#A6DA95",
	"orange":    "#F5A97F",
	"purple":    "#C6A0F6",
	"royalblue": "#89B4FA",
	"crimson":   "#F38BA8",
	"teal":      "#8BD5CA",
	"silver":    "#A9A9A9",
	"gray":      "#8E8E8E",
	"grey":      "#8E8E8E",
	"brown":     "#B5854B",
	"gold":      "#F9E2AF",
	"chocolate": "#C77B47",
}

// RenderStyled converts styled text to an ANSI string. Only the text fields
// of the spans reach the output; styling always comes from the attribute
// fields, never from the content.
func RenderStyled(st bbcode.StyledText) string {
	var b strings.Builder
	for _, s := range st.Spans {
		b.WriteString(renderSpan(s))
	}
	return b.String()
}

func renderSpan(s bbcode.Span) string {
	style := lipgloss.NewStyle()
	if s.Bold {
		style = style.Bold(true)
	}
	if s.Italic {
		style = style.Italic(true)
	}
	if s.Underline {
		style = style.Underline(true)
	}
	if s.Strike {
		style = style.Strikethrough(true)
	}
	if c := spanColor(s); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}

	// Styles apply per line so a span containing newlines does not drag
	// its ANSI state across line boundaries.
	lines := strings.Split(s.Text, "\n")
	for i, ln := range lines {
		lines[i] = style.Render(ln)
	}
	out := strings.Join(lines, "\n")

	if s.Link != "" && s.Text != s.Link {
		out += HintStyle.Render(" <" + s.Link + ">")
	}
	return out
}

func spanColor(s bbcode.Span) string {
	if s.Link != "" {
		return colorNames["blue"]
	}
	c := strings.TrimSpace(s.Color)
	if c == "" {
		return ""
	}
	// Hex values pass through untouched; only names go through the map.
	if strings.HasPrefix(c, "#") {
		return c
	}
	return colorNames[strings.ToLower(c)]
}

// ClampWidth hard-cuts every line to width terminal cells, ANSI-aware.
func ClampWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}
