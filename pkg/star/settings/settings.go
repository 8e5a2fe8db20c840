package settings

import (
	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// Default values. They are exported so CLI flag help can show them;
// [Default] is the way to get a complete record.
const (
	DefaultRating           = 2.718281828
	DefaultTotalStars       = 5
	DefaultFillMode         = fill.Full
	DefaultFillCorrection   = 0.0
	DefaultStarSize         = 20.0
	DefaultStarMargin       = 5.0
	DefaultEmptyBorderWidth = 1.0
	DefaultTextMargin       = 5.0
	DefaultFontSize         = 14.0
	DefaultFontFamily       = "Go"
)

var (
	DefaultStarColor = RGB(0xff, 0x95, 0x00)
	DefaultTextColor = RGB(0xaa, 0xaa, 0xaa)
)

// Font names the face used for the trailing text. Point sizes stop at
// 1000 so a settings file cannot ask for an unbounded glyph raster.
type Font struct {
	Family    string  `validate:"required"`
	PointSize float64 `validate:"finite,gt=0,lte=1000"`
}

// Settings is the full configuration of a star row.
type Settings struct {
	// Rating and Text are the values shown when a render call does not
	// supply its own.
	Rating float64
	Text   string

	TotalStars     int       `validate:"gt=0"`
	FillMode       fill.Mode `validate:"gte=0,lte=2"`
	FillCorrection float64   `validate:"finite,gte=0,lte=100"`

	StarSize         float64       `validate:"finite,gt=0"`
	StarMargin       float64       `validate:"finite,gte=0"`
	FilledColor      Color
	EmptyColor       Color
	EmptyBorderWidth float64       `validate:"finite,gte=0"`
	StarPoints       []shape.Point `validate:"min=3"`

	TextColor  Color
	Font       Font
	TextMargin float64 `validate:"finite,gte=0"`
}

// Default returns the default settings. Each call returns a fresh value
// with its own copy of the star polygon.
func Default() Settings {
	return Settings{
		Rating:           DefaultRating,
		TotalStars:       DefaultTotalStars,
		FillMode:         DefaultFillMode,
		FillCorrection:   DefaultFillCorrection,
		StarSize:         DefaultStarSize,
		StarMargin:       DefaultStarMargin,
		FilledColor:      DefaultStarColor,
		EmptyColor:       DefaultStarColor,
		EmptyBorderWidth: DefaultEmptyBorderWidth,
		StarPoints:       shape.Default(),
		TextColor:        DefaultTextColor,
		Font:             Font{Family: DefaultFontFamily, PointSize: DefaultFontSize},
		TextMargin:       DefaultTextMargin,
	}
}

// Clone returns a copy that shares no memory with s.
func (s Settings) Clone() Settings {
	s.StarPoints = append([]shape.Point(nil), s.StarPoints...)
	return s
}

// FillLevels runs the fill calculator with the receiver's mode and correction.
func (s Settings) FillLevels(rating float64) []float64 {
	return fill.Levels(rating, s.TotalStars, s.FillMode, s.FillCorrection)
}

// MarginFromPercent derives a margin from a font point size.
func MarginFromPercent(pointSize, percent float64) float64 {
	return pointSize * percent / 100
}
