package settings

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/shape"
)

// File is the on-disk form of [Settings]. Nil fields keep the value they
// overlay.
type File struct {
	Rating *float64 `toml:"rating"`
	Text   *string  `toml:"text"`

	TotalStars     *int       `toml:"total_stars"`
	FillMode       *fill.Mode `toml:"fill_mode"`
	FillCorrection *float64   `toml:"fill_correction"`

	StarSize          *float64     `toml:"star_size"`
	StarMargin        *float64     `toml:"star_margin"`
	StarMarginPercent *float64     `toml:"star_margin_percent"`
	FilledColor       *Color       `toml:"filled_color"`
	EmptyColor        *Color       `toml:"empty_color"`
	EmptyBorderWidth  *float64     `toml:"empty_border_width"`
	StarPoints        [][2]float64 `toml:"star_points"`

	TextColor         *Color   `toml:"text_color"`
	FontFamily        *string  `toml:"font_family"`
	FontSize          *float64 `toml:"font_size"`
	TextMargin        *float64 `toml:"text_margin"`
	TextMarginPercent *float64 `toml:"text_margin_percent"`
}

// Apply overlays f onto s. Percentage margins are resolved against the
// font size after the font size itself has been applied.
func (f File) Apply(s Settings) Settings {
	s = s.Clone()
	set(&s.Rating, f.Rating)
	set(&s.Text, f.Text)
	set(&s.TotalStars, f.TotalStars)
	set(&s.FillMode, f.FillMode)
	set(&s.FillCorrection, f.FillCorrection)
	set(&s.StarSize, f.StarSize)
	set(&s.StarMargin, f.StarMargin)
	set(&s.FilledColor, f.FilledColor)
	set(&s.EmptyColor, f.EmptyColor)
	set(&s.EmptyBorderWidth, f.EmptyBorderWidth)
	set(&s.TextColor, f.TextColor)
	set(&s.Font.Family, f.FontFamily)
	set(&s.Font.PointSize, f.FontSize)
	set(&s.TextMargin, f.TextMargin)

	if f.StarPoints != nil {
		s.StarPoints = make([]shape.Point, len(f.StarPoints))
		for i, p := range f.StarPoints {
			s.StarPoints[i] = shape.Pt(p[0], p[1])
		}
	}
	if f.StarMarginPercent != nil {
		s.StarMargin = MarginFromPercent(s.Font.PointSize, *f.StarMarginPercent)
	}
	if f.TextMarginPercent != nil {
		s.TextMargin = MarginFromPercent(s.Font.PointSize, *f.TextMarginPercent)
	}
	return s
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// FileFrom returns a File with every field of s set.
func FileFrom(s Settings) File {
	points := make([][2]float64, len(s.StarPoints))
	for i, p := range s.StarPoints {
		points[i] = [2]float64{p.X, p.Y}
	}
	return File{
		Rating:           &s.Rating,
		Text:             &s.Text,
		TotalStars:       &s.TotalStars,
		FillMode:         &s.FillMode,
		FillCorrection:   &s.FillCorrection,
		StarSize:         &s.StarSize,
		StarMargin:       &s.StarMargin,
		FilledColor:      &s.FilledColor,
		EmptyColor:       &s.EmptyColor,
		EmptyBorderWidth: &s.EmptyBorderWidth,
		StarPoints:       points,
		TextColor:        &s.TextColor,
		FontFamily:       &s.Font.Family,
		FontSize:         &s.Font.PointSize,
		TextMargin:       &s.TextMargin,
	}
}

// Decode reads TOML from r and overlays it onto base. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Decode(r io.Reader, base Settings) (Settings, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidSettings, err, "parse settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Settings{}, errors.New(errors.ErrCodeInvalidSettings, "unknown settings keys: %s", strings.Join(keys, ", "))
	}

	s := f.Apply(base)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadFile reads a TOML settings file and overlays it onto the defaults.
func LoadFile(path string) (Settings, error) {
	fh, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file %s", path)
		}
		return Settings{}, errors.Wrap(errors.ErrCodeInternal, err, "open settings %s", path)
	}
	defer fh.Close()
	return Decode(fh, Default())
}

// WriteFile encodes s as TOML.
func WriteFile(w io.Writer, s Settings) error {
	if err := toml.NewEncoder(w).Encode(FileFrom(s)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode settings")
	}
	return nil
}
