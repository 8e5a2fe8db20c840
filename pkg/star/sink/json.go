package sink

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/star/compose"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	settings *settings.Settings
	compact  bool
}

// WithJSONSettings records the fill settings used to produce the layout.
func WithJSONSettings(s settings.Settings) JSONOption {
	return func(r *jsonRenderer) { r.settings = &s }
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Rating     float64    `json:"rating"`
	TotalStars int        `json:"total_stars"`
	FillMode   string     `json:"fill_mode,omitempty"`
	Correction *float64   `json:"fill_correction,omitempty"`
	Stars      []jsonStar `json:"stars"`
	Text       *jsonText  `json:"text,omitempty"`
}

type jsonStar struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Level  float64     `json:"level"`
	Kind   string      `json:"kind"`
	Layers []jsonLayer `json:"layers"`
}

type jsonLayer struct {
	Path      string  `json:"path"`
	Fill      string  `json:"fill"`
	Stroke    string  `json:"stroke"`
	LineWidth float64 `json:"line_width,omitempty"`
	ClipWidth float64 `json:"clip_width,omitempty"`
}

type jsonText struct {
	Value    string  `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Color    string  `json:"color"`
	Font     string  `json:"font"`
	FontSize float64 `json:"font_size"`
}

// RenderJSON exports the layout with star geometry as SVG path data.
func RenderJSON(res layout.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      res.Size.Width,
		Height:     res.Size.Height,
		Rating:     res.Rating,
		TotalStars: len(res.Stars),
		Stars:      lo.Map(res.Stars, func(st layout.Star, _ int) jsonStar { return toJSONStar(st) }),
	}
	if r.settings != nil {
		out.FillMode = r.settings.FillMode.String()
		c := r.settings.FillCorrection
		out.Correction = &c
	}
	if t := res.Text; t != nil {
		out.Text = &jsonText{
			Value:    t.Value,
			X:        t.Origin.X,
			Y:        t.Origin.Y,
			Width:    t.Size.Width,
			Height:   t.Size.Height,
			Color:    t.Color.String(),
			Font:     t.Font.Family,
			FontSize: t.Font.PointSize,
		}
	}

	var (
		data []byte
		err  error
	)
	if r.compact {
		data, err = json.Marshal(out)
	} else {
		data, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}

func toJSONStar(st layout.Star) jsonStar {
	return jsonStar{
		X:      st.Origin.X,
		Y:      st.Origin.Y,
		Width:  st.Unit.Size.Width,
		Height: st.Unit.Size.Height,
		Level:  st.Unit.Level,
		Kind:   st.Unit.Kind().String(),
		Layers: lo.Map(st.Unit.Layers, func(l compose.Layer, _ int) jsonLayer {
			return jsonLayer{
				Path:      l.Path.SVG(),
				Fill:      l.Fill.String(),
				Stroke:    l.Stroke.String(),
				LineWidth: l.LineWidth,
				ClipWidth: l.ClipWidth,
			}
		}),
	}
}
