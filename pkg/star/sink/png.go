package sink

import (
	"bytes"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/fonts"
	"github.com/matzehuels/starbar/pkg/star/compose"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// MaxPNGDimension bounds either side of a rendered PNG in pixels.
const MaxPNGDimension = 8192

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	width      int
	background settings.Color
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithWidth resizes the output to exactly px pixels wide, keeping the
// aspect ratio. Zero keeps the scaled size.
func WithWidth(px int) PNGOption {
	return func(r *pngRenderer) { r.width = px }
}

// WithPNGBackground fills the canvas before drawing. The default is
// transparent.
func WithPNGBackground(c settings.Color) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the layout.
func RenderPNG(res layout.Result, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}
	if r.width < 0 || r.width > MaxPNGDimension {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png width must be in [0, %d], got %d", MaxPNGDimension, r.width)
	}

	w := max(1, int(math.Ceil(res.Size.Width*r.scale)))
	h := max(1, int(math.Ceil(res.Size.Height*r.scale)))
	if w > MaxPNGDimension || h > MaxPNGDimension {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png would be %dx%d pixels (max %d)", w, h, MaxPNGDimension)
	}

	dc := gg.NewContext(w, h)
	if !r.background.IsTransparent() {
		dc.SetColor(r.background)
		dc.Clear()
	}

	dc.Scale(r.scale, r.scale)
	for _, st := range res.Stars {
		drawStar(dc, st, r.scale)
	}
	if res.Text != nil {
		if err := drawText(dc, *res.Text, r.scale); err != nil {
			return nil, err
		}
	}

	img := dc.Image()
	if r.width > 0 && r.width != w {
		img = imaging.Resize(img, r.width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawStar(dc *gg.Context, st layout.Star, scale float64) {
	dc.Push()
	defer dc.Pop()
	dc.Translate(st.Origin.X, st.Origin.Y)

	for _, l := range st.Unit.Layers {
		if l.Clipped() {
			dc.DrawRectangle(0, 0, l.ClipWidth, st.Unit.Size.Height)
			dc.Clip()
		}
		drawLayer(dc, l, scale)
		dc.ResetClip()
	}
}

func drawLayer(dc *gg.Context, l compose.Layer, scale float64) {
	points := l.Path.Points()
	if len(points) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()

	if !l.Fill.IsTransparent() {
		dc.SetColor(l.Fill)
		dc.FillPreserve()
	}
	if !l.Stroke.IsTransparent() && l.LineWidth > 0 {
		// gg strokes in device space.
		dc.SetLineWidth(l.LineWidth * scale)
		dc.SetLineJoinRound()
		dc.SetColor(l.Stroke)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func drawText(dc *gg.Context, t layout.Text, scale float64) error {
	f := settings.Font{Family: t.Font.Family, PointSize: t.Font.PointSize * scale}
	face, err := fonts.Face(f)
	if err != nil {
		return err
	}
	defer face.Close()

	// Text is drawn unscaled with a face sized for the device.
	x, y := dc.TransformPoint(t.Origin.X, t.Origin.Y)
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.SetFontFace(face)
	dc.SetColor(t.Color)
	dc.DrawString(t.Value, x, y+fonts.Ascent(f))
	return nil
}
