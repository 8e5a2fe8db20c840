package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/starbar/pkg/fonts"
	"github.com/matzehuels/starbar/pkg/star/compose"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/settings"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// clipNamespace seeds the name-based UUIDs used for clipPath ids.
var clipNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/starbar#clip"))

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFont  bool
	background settings.Color
	class      string
}

// WithEmbeddedFont inlines the text font as a base64 @font-face rule so the
// SVG renders identically without the font installed.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithBackground fills the whole canvas before drawing.
func WithBackground(c settings.Color) SVGOption {
	return func(r *svgRenderer) { r.background = c }
}

// WithClass sets the class attribute of the root element.
func WithClass(class string) SVGOption { return func(r *svgRenderer) { r.class = class } }

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(res layout.Result, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := shape.FormatCoord(res.Size.Width), shape.FormatCoord(res.Size.Height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s"`, w, h, w, h)
	if r.class != "" {
		fmt.Fprintf(&buf, ` class="%s"`, escapeXML(r.class))
	}
	buf.WriteString(">\n")

	ids := clipIDs(res)
	renderDefs(&buf, res, ids, r.embedFont)

	if !r.background.IsTransparent() {
		fmt.Fprintf(&buf, `  <rect width="%s" height="%s"%s/>`+"\n", w, h, paint("fill", r.background))
	}
	for i, st := range res.Stars {
		renderStar(&buf, st, ids[i])
	}
	if res.Text != nil {
		renderText(&buf, *res.Text)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// clipIDs returns one id per star; stars without a clipped layer get "".
func clipIDs(res layout.Result) []string {
	var seed strings.Builder
	fmt.Fprintf(&seed, "%g|%v|%v", res.Rating, res.Levels, res.Size)
	for _, st := range res.Stars {
		if len(st.Unit.Layers) > 0 {
			seed.WriteString(st.Unit.Layers[0].Path.SVG())
			break
		}
	}
	base := seed.String()

	ids := make([]string, len(res.Stars))
	for i, st := range res.Stars {
		if st.Unit.Kind() != compose.Partial {
			continue
		}
		ids[i] = "clip-" + uuid.NewSHA1(clipNamespace, fmt.Appendf(nil, "%s|%d", base, i)).String()
	}
	return ids
}

func renderDefs(buf *bytes.Buffer, res layout.Result, ids []string, embedFont bool) {
	embed := embedFont && res.Text != nil
	hasClip := false
	for _, id := range ids {
		if id != "" {
			hasClip = true
			break
		}
	}
	if !hasClip && !embed {
		return
	}

	buf.WriteString("  <defs>\n")
	if embed {
		fmt.Fprintf(buf, "    <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
			escapeXML(res.Text.Font.Family), fonts.TTFBase64(res.Text.Font.Family))
	}
	for i, st := range res.Stars {
		if ids[i] == "" {
			continue
		}
		for _, l := range st.Unit.Layers {
			if !l.Clipped() {
				continue
			}
			fmt.Fprintf(buf, `    <clipPath id="%s"><rect width="%s" height="%s"/></clipPath>`+"\n",
				ids[i], shape.FormatCoord(l.ClipWidth), shape.FormatCoord(st.Unit.Size.Height))
			break
		}
	}
	buf.WriteString("  </defs>\n")
}

func renderStar(buf *bytes.Buffer, st layout.Star, clipID string) {
	fmt.Fprintf(buf, `  <g transform="translate(%s,%s)">`+"\n",
		shape.FormatCoord(st.Origin.X), shape.FormatCoord(st.Origin.Y))
	for _, l := range st.Unit.Layers {
		fmt.Fprintf(buf, `    <path d="%s"%s`, l.Path.SVG(), paint("fill", l.Fill))
		if !l.Stroke.IsTransparent() && l.LineWidth > 0 {
			fmt.Fprintf(buf, `%s stroke-width="%s" stroke-linejoin="round"`, paint("stroke", l.Stroke), shape.FormatCoord(l.LineWidth))
		}
		if l.Clipped() && clipID != "" {
			fmt.Fprintf(buf, ` clip-path="url(#%s)"`, clipID)
		}
		buf.WriteString("/>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderText(buf *bytes.Buffer, t layout.Text) {
	baseline := t.Origin.Y + fonts.Ascent(t.Font)
	fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s"%s>%s</text>`+"\n",
		shape.FormatCoord(t.Origin.X), shape.FormatCoord(baseline),
		escapeXML(fonts.CSSFamily(t.Font.Family)), shape.FormatCoord(t.Font.PointSize),
		paint("fill", t.Color), escapeXML(t.Value))
}

// paint returns a fill or stroke attribute list for c, with a separate
// opacity attribute for translucent colors.
func paint(attr string, c settings.Color) string {
	if c.IsTransparent() {
		return fmt.Sprintf(` %s="none"`, attr)
	}
	s := fmt.Sprintf(` %s="%s"`, attr, c.RGBHex())
	if c.A != 0xff {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, shape.FormatCoord(c.Opacity()))
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
