package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/starbar/pkg/star/settings"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// Face returns a new face for the font at the given point size (72 DPI,
// so one point is one pixel at scale 1). Faces are not safe for
// concurrent use; callers that share one must synchronize.
//
// truetype allocates every glyph cache mask up front at the full glyph
// box, so the face keeps one entry. Labels are a few glyphs long.
func Face(f settings.Font) (font.Face, error) {
	tt, err := Parse(f.Family)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(tt, &truetype.Options{
		Size:              f.PointSize,
		DPI:               72,
		Hinting:           font.HintingNone,
		GlyphCacheEntries: 1,
	}), nil
}

type faceKey struct {
	family string
	size   float64
}

// measureFaces bounds how many sizes a Measurer keeps. Badge traffic
// uses a handful of sizes, so older ones are evicted rather than kept
// for the life of the process.
const measureFaces = 32

// Measurer measures text with the built-in fonts. It keeps the most
// recently used faces, one per (family, size), and is safe for concurrent
// use.
type Measurer struct {
	mu    sync.Mutex
	faces *lru.Cache[faceKey, font.Face]
}

// NewMeasurer returns an empty Measurer.
func NewMeasurer() *Measurer {
	// NewWithEvict only fails for a non-positive size.
	faces, _ := lru.NewWithEvict(measureFaces, func(_ faceKey, face font.Face) { _ = face.Close() })
	return &Measurer{faces: faces}
}

// face returns the cached face for f. m.mu must be held.
func (m *Measurer) face(f settings.Font) (font.Face, bool) {
	key := faceKey{family: f.Family, size: f.PointSize}
	if face, ok := m.faces.Get(key); ok {
		return face, true
	}
	face, err := Face(f)
	if err != nil {
		return nil, false
	}
	m.faces.Add(key, face)
	return face, true
}

// MeasureText returns the advance width of text and the line height
// (ascent plus descent) of the font. It returns a zero size when the font
// cannot be loaded.
func (m *Measurer) MeasureText(text string, f settings.Font) shape.Size {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.face(f)
	if !ok {
		return shape.Size{}
	}
	metrics := face.Metrics()
	return shape.Sz(
		toFloat(font.MeasureString(face, text)),
		toFloat(metrics.Ascent+metrics.Descent),
	)
}

// Ascent returns the distance from the top of the line box to the
// baseline.
func (m *Measurer) Ascent(f settings.Font) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, ok := m.face(f)
	if !ok {
		return 0
	}
	return toFloat(face.Metrics().Ascent)
}

// Len reports how many faces are cached.
func (m *Measurer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.faces.Len()
}

// shared backs [Default] and [Ascent], so layout and the sinks reuse the
// same faces.
var shared = NewMeasurer()

// Default returns the process-wide Measurer.
func Default() *Measurer { return shared }

// Ascent returns the distance from the top of a line box measured by
// [Measurer] to the text baseline.
func Ascent(f settings.Font) float64 {
	return shared.Ascent(f)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
