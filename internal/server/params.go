package server

import (
	"net/url"
	"strconv"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/pipeline"
	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// Request limits. They keep a single badge request from asking for an
// arbitrarily large drawing.
const (
	DefaultMaxStars = 20
	maxStarSize     = 256
	maxFontSize     = 128
	maxScale        = 8
	maxTextLength   = 128
)

// optionsFromQuery overlays the query parameters onto base and returns the
// pipeline options for one badge in the given format.
func (s *Server) optionsFromQuery(q url.Values, format string) (pipeline.Options, error) {
	st := s.base.Clone()
	opts := pipeline.Options{Formats: []string{format}, Logger: s.logger}

	if v := q.Get("rating"); v != "" {
		r, err := parseFloat("rating", v)
		if err != nil {
			return opts, err
		}
		opts.Rating = pipeline.Float(r)
	}
	if q.Has("text") {
		text := q.Get("text")
		if len([]rune(text)) > maxTextLength {
			return opts, errors.New(errors.ErrCodeInvalidInput, "text longer than %d characters", maxTextLength)
		}
		opts.Text = pipeline.String(text)
	}
	if v := q.Get("total"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "total: %q is not an integer", v)
		}
		if n > s.maxStars {
			return opts, errors.New(errors.ErrCodeInvalidInput, "total: at most %d stars", s.maxStars)
		}
		st.TotalStars = n
	}
	if v := q.Get("mode"); v != "" {
		m, err := fill.ParseMode(v)
		if err != nil {
			return opts, err
		}
		st.FillMode = m
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"correction", &st.FillCorrection},
		{"size", &st.StarSize},
		{"margin", &st.StarMargin},
		{"border", &st.EmptyBorderWidth},
		{"font_size", &st.Font.PointSize},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		parsed, err := parseFloat(f.key, v)
		if err != nil {
			return opts, err
		}
		*f.dst = parsed
	}
	if st.StarSize > maxStarSize {
		return opts, errors.New(errors.ErrCodeInvalidInput, "size: at most %d", maxStarSize)
	}
	if st.Font.PointSize > maxFontSize {
		return opts, errors.New(errors.ErrCodeInvalidInput, "font_size: at most %d", maxFontSize)
	}

	colors := []struct {
		key string
		dst *settings.Color
	}{
		{"filled", &st.FilledColor},
		{"empty", &st.EmptyColor},
		{"text_color", &st.TextColor},
		{"bg", &opts.Background},
	}
	for _, c := range colors {
		v := q.Get(c.key)
		if v == "" {
			continue
		}
		parsed, err := settings.ParseColor(v)
		if err != nil {
			return opts, err
		}
		*c.dst = parsed
	}

	if v := q.Get("scale"); v != "" {
		scale, err := parseFloat("scale", v)
		if err != nil {
			return opts, err
		}
		if scale > maxScale {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale: at most %d", maxScale)
		}
		opts.Scale = scale
	}
	if v := q.Get("width"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "width: %q is not an integer", v)
		}
		opts.PNGWidth = w
	}
	opts.EmbedFont = q.Get("embed_font") == "true" || q.Get("embed_font") == "1"

	opts.Settings = st
	return opts, nil
}

func parseFloat(key, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", key, v)
	}
	return f, nil
}
