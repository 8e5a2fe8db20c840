// Package layout places composed stars in a row and appends the text label.
//
// All coordinates use a top-left origin with y growing downward. Stars sit
// on the row's top edge; the text is vertically centered on the row. When
// the text is taller than the row everything is shifted so that the
// topmost item touches y = 0, keeping the reported size a tight box.
package layout

import (
	"github.com/samber/lo"

	"github.com/matzehuels/starbar/pkg/star/compose"
	"github.com/matzehuels/starbar/pkg/star/settings"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// TextMeasurer reports the rendered size of a text run.
type TextMeasurer interface {
	MeasureText(text string, font settings.Font) shape.Size
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, font settings.Font) shape.Size

// MeasureText calls f.
func (f MeasureFunc) MeasureText(text string, font settings.Font) shape.Size {
	return f(text, font)
}

// Star is a unit placed at Origin.
type Star struct {
	Origin shape.Point
	Unit   compose.Unit
}

// Bounds returns the star's box in layout coordinates.
func (s Star) Bounds() shape.Rect { return shape.NewRect(s.Origin, s.Unit.Size) }

// Text is the trailing label placed at Origin.
type Text struct {
	Origin shape.Point
	Size   shape.Size
	Value  string
	Color  settings.Color
	Font   settings.Font
}

// Bounds returns the label's box in layout coordinates.
func (t Text) Bounds() shape.Rect { return shape.NewRect(t.Origin, t.Size) }

// Result is a complete layout.
type Result struct {
	Rating float64
	Levels []float64
	Stars  []Star
	// Text is nil when no label is shown.
	Text *Text
	Size shape.Size
}

// Items returns the boxes of every placed item, stars first.
func (r Result) Items() []shape.Rect {
	items := lo.Map(r.Stars, func(s Star, _ int) shape.Rect { return s.Bounds() })
	if r.Text != nil {
		items = append(items, r.Text.Bounds())
	}
	return items
}

// Row positions units left to right. Unit i+1 starts margin after the
// right edge of unit i. The returned size spans all units; its height is
// the tallest unit.
func Row(units []compose.Unit, margin float64) ([]shape.Point, shape.Size) {
	origins := make([]shape.Point, len(units))
	x := 0.0
	for i, u := range units {
		origins[i] = shape.Pt(x, 0)
		x += u.Size.Width
		if i < len(units)-1 {
			x += margin
		}
	}
	height := lo.Max(lo.Map(units, func(u compose.Unit, _ int) float64 { return u.Size.Height }))
	return origins, shape.Sz(x, height)
}

// AppendText returns the origin of a text block placed margin after the
// row and vertically centered on it. The y coordinate is negative when the
// text is taller than the row.
func AppendText(row, text shape.Size, margin float64) shape.Point {
	return shape.Pt(row.Width+margin, (row.Height-text.Height)/2)
}

// BoundingSize returns the size of the tightest box containing all items.
func BoundingSize(items []shape.Rect) shape.Size {
	if len(items) == 0 {
		return shape.Size{}
	}
	return lo.Reduce(items[1:], func(acc shape.Rect, r shape.Rect, _ int) shape.Rect {
		return acc.Union(r)
	}, items[0]).Size()
}

// Build runs the fill, compose and layout steps for one rating. A nil
// measurer or empty text produces a layout without a label.
func Build(s settings.Settings, rating float64, text string, m TextMeasurer) Result {
	levels := s.FillLevels(rating)
	units := compose.BuildAll(levels, s)
	origins, row := Row(units, s.StarMargin)

	r := Result{
		Rating: rating,
		Levels: levels,
		Stars:  make([]Star, len(units)),
	}
	for i, u := range units {
		r.Stars[i] = Star{Origin: origins[i], Unit: u}
	}

	if text != "" && m != nil {
		size := m.MeasureText(text, s.Font)
		r.Text = &Text{
			Origin: AppendText(row, size, s.TextMargin),
			Size:   size,
			Value:  text,
			Color:  s.TextColor,
			Font:   s.Font,
		}
		if dy := -r.Text.Origin.Y; dy > 0 {
			r.shift(dy)
		}
	}

	r.Size = BoundingSize(r.Items())
	return r
}

func (r *Result) shift(dy float64) {
	for i := range r.Stars {
		r.Stars[i].Origin = r.Stars[i].Origin.Translate(0, dy)
	}
	if r.Text != nil {
		r.Text.Origin = r.Text.Origin.Translate(0, dy)
	}
}
