package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// settingsFlags are the widget flags shared by render, preview and serve.
// Values only override the settings file when the flag was given.
type settingsFlags struct {
	config     string
	rating     float64
	text       string
	total      int
	mode       string
	correction float64
	size       float64
	margin     float64
	filled     string
	empty      string
	border     float64
	textColor  string
	fontSize   float64
}

func (f *settingsFlags) register(fs *pflag.FlagSet) {
	d := settings.Default()
	fs.StringVarP(&f.config, "config", "c", "", "TOML settings file")
	fs.Float64VarP(&f.rating, "rating", "r", d.Rating, "rating to display")
	fs.StringVarP(&f.text, "text", "t", d.Text, "label drawn after the stars")
	fs.IntVarP(&f.total, "total", "n", d.TotalStars, "number of stars")
	fs.StringVarP(&f.mode, "mode", "m", d.FillMode.String(), "fill mode: full, half, precise")
	fs.Float64Var(&f.correction, "correction", d.FillCorrection, "precise mode fill correction (0-100)")
	fs.Float64Var(&f.size, "size", d.StarSize, "star width and height")
	fs.Float64Var(&f.margin, "margin", d.StarMargin, "gap between stars")
	fs.StringVar(&f.filled, "filled", d.FilledColor.String(), "filled star color")
	fs.StringVar(&f.empty, "empty", d.EmptyColor.String(), "empty star outline color")
	fs.Float64Var(&f.border, "border", d.EmptyBorderWidth, "empty star outline width")
	fs.StringVar(&f.textColor, "text-color", d.TextColor.String(), "label color")
	fs.Float64Var(&f.fontSize, "font-size", d.Font.PointSize, "label font size in points")
}

// resolve loads the settings file (or the defaults) and applies the flags
// that were set on cmd.
func (f *settingsFlags) resolve(cmd *cobra.Command) (settings.Settings, error) {
	s := settings.Default()
	if f.config != "" {
		loaded, err := settings.LoadFile(f.config)
		if err != nil {
			return settings.Settings{}, err
		}
		s = loaded
	}

	changed := cmd.Flags().Changed
	if changed("rating") {
		s.Rating = f.rating
	}
	if changed("text") {
		s.Text = f.text
	}
	if changed("total") {
		s.TotalStars = f.total
	}
	if changed("mode") {
		m, err := fill.ParseMode(f.mode)
		if err != nil {
			return settings.Settings{}, err
		}
		s.FillMode = m
	}
	if changed("correction") {
		s.FillCorrection = f.correction
	}
	if changed("size") {
		s.StarSize = f.size
	}
	if changed("margin") {
		s.StarMargin = f.margin
	}
	if changed("border") {
		s.EmptyBorderWidth = f.border
	}
	if changed("font-size") {
		s.Font.PointSize = f.fontSize
	}

	colors := []struct {
		flag  string
		value string
		dst   *settings.Color
	}{
		{"filled", f.filled, &s.FilledColor},
		{"empty", f.empty, &s.EmptyColor},
		{"text-color", f.textColor, &s.TextColor},
	}
	for _, c := range colors {
		if !changed(c.flag) {
			continue
		}
		parsed, err := settings.ParseColor(c.value)
		if err != nil {
			return settings.Settings{}, err
		}
		*c.dst = parsed
	}

	if err := s.Validate(); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}
