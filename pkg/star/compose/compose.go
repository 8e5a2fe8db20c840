// Package compose turns a fill fraction into the layers that draw one star.
//
// A star is either a single filled layer, a single outlined (empty) layer,
// or, for a partial fraction, an outlined base with a filled copy on top
// that is clipped to the left part of the star's box.
package compose

import (
	"math"

	"github.com/samber/lo"

	"github.com/matzehuels/starbar/pkg/star/settings"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// Kind classifies a unit by how it is drawn.
type Kind int

const (
	// Empty is an unfilled star drawn in the empty color and border.
	Empty Kind = iota
	// Filled is a star drawn entirely in the filled color.
	Filled
	// Partial is an empty star with a clipped filled layer over it.
	Partial
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Filled:
		return "filled"
	case Partial:
		return "partial"
	default:
		return "unknown"
	}
}

// Layer is one closed polygon with its paint. Coordinates are local to
// the unit's box, whose origin is the top-left corner.
type Layer struct {
	Path      shape.Path
	Fill      settings.Color
	Stroke    settings.Color
	LineWidth float64
	// ClipWidth limits drawing to [0, ClipWidth] horizontally.
	// Zero means the layer is not clipped.
	ClipWidth float64
}

// Clipped reports whether the layer carries a clip.
func (l Layer) Clipped() bool { return l.ClipWidth > 0 }

// Unit is a single star ready for placement.
type Unit struct {
	Size   shape.Size
	Level  float64
	Layers []Layer
}

// Kind reports how the unit is drawn.
func (u Unit) Kind() Kind {
	switch {
	case len(u.Layers) > 1:
		return Partial
	case len(u.Layers) == 1 && u.Level >= 1:
		return Filled
	default:
		return Empty
	}
}

// Build composes the star for a single fill level. Levels at or above 1
// give a filled star; levels at or below 0, and NaN, give an empty one.
func Build(level float64, s settings.Settings) Unit {
	path := shape.BuildClosedPath(shape.ScaleTo(s.StarPoints, s.StarSize))
	u := Unit{Size: shape.Sz(s.StarSize, s.StarSize)}

	switch {
	case math.IsNaN(level) || level <= 0:
		u.Layers = []Layer{emptyLayer(path, s)}
	case level >= 1:
		u.Level = 1
		u.Layers = []Layer{filledLayer(path, s)}
	default:
		u.Level = level
		overlay := filledLayer(path, s)
		overlay.ClipWidth = level * s.StarSize
		u.Layers = []Layer{emptyLayer(path, s), overlay}
	}
	return u
}

// BuildAll composes one unit per fill level.
func BuildAll(levels []float64, s settings.Settings) []Unit {
	return lo.Map(levels, func(level float64, _ int) Unit {
		return Build(level, s)
	})
}

func filledLayer(path shape.Path, s settings.Settings) Layer {
	return Layer{Path: path, Fill: s.FilledColor}
}

func emptyLayer(path shape.Path, s settings.Settings) Layer {
	return Layer{Path: path, Stroke: s.EmptyColor, LineWidth: s.EmptyBorderWidth}
}
