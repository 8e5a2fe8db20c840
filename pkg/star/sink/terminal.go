package sink

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/starbar/pkg/star/compose"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// Glyphs are the runes used by [RenderTerminal].
type Glyphs struct {
	Filled, Partial, Empty string
}

// DefaultGlyphs draws filled, half and outlined stars.
var DefaultGlyphs = Glyphs{Filled: "★", Partial: "⯨", Empty: "☆"}

// ASCIIGlyphs works on terminals without the star symbols.
var ASCIIGlyphs = Glyphs{Filled: "*", Partial: "+", Empty: "."}

// TerminalOption configures terminal rendering.
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	glyphs   Glyphs
	renderer *lipgloss.Renderer
}

// WithGlyphs replaces the default star glyphs.
func WithGlyphs(g Glyphs) TerminalOption { return func(r *terminalRenderer) { r.glyphs = g } }

// WithRenderer uses a specific lipgloss renderer, e.g. one bound to the
// command's output stream.
func WithRenderer(lr *lipgloss.Renderer) TerminalOption {
	return func(r *terminalRenderer) { r.renderer = lr }
}

// RenderTerminal renders the stars as colored glyphs followed by the text.
// Stars are separated by a space when the layout has a star margin.
func RenderTerminal(res layout.Result, opts ...TerminalOption) string {
	r := terminalRenderer{glyphs: DefaultGlyphs, renderer: lipgloss.DefaultRenderer()}
	for _, opt := range opts {
		opt(&r)
	}

	sep := ""
	if len(res.Stars) > 1 && res.Stars[1].Origin.X > res.Stars[0].Bounds().X1 {
		sep = " "
	}

	var b strings.Builder
	for i, st := range res.Stars {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(r.glyph(st.Unit))
	}
	if t := res.Text; t != nil {
		b.WriteString(" ")
		b.WriteString(r.style(t.Color).Render(t.Value))
	}
	return b.String()
}

func (r terminalRenderer) glyph(u compose.Unit) string {
	if len(u.Layers) == 0 {
		return r.glyphs.Empty
	}
	switch u.Kind() {
	case compose.Filled:
		return r.style(u.Layers[0].Fill).Render(r.glyphs.Filled)
	case compose.Partial:
		return r.style(u.Layers[1].Fill).Render(r.glyphs.Partial)
	default:
		return r.style(u.Layers[0].Stroke).Render(r.glyphs.Empty)
	}
}

func (r terminalRenderer) style(c settings.Color) lipgloss.Style {
	s := r.renderer.NewStyle()
	if !c.IsTransparent() {
		s = s.Foreground(lipgloss.Color(c.RGBHex()))
	}
	return s
}
