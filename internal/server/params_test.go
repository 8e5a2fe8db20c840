package server

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/starbar/pkg/star/fill"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

func TestOptionsFromQuery(t *testing.T) {
	s := newTestServer(t, nil)

	q := url.Values{
		"rating":     {"3.7"},
		"text":       {"3.7 / 5"},
		"total":      {"6"},
		"mode":       {"Precise"},
		"correction": {"12.5"},
		"size":       {"32"},
		"margin":     {"2"},
		"filled":     {"#f00"},
		"empty":      {"#00ff0080"},
		"bg":         {"#ffffff"},
		"scale":      {"3"},
		"width":      {"200"},
		"embed_font": {"true"},
	}
	opts, err := s.optionsFromQuery(q, "png")
	require.NoError(t, err)

	require.NotNil(t, opts.Rating)
	assert.Equal(t, 3.7, *opts.Rating)
	require.NotNil(t, opts.Text)
	assert.Equal(t, "3.7 / 5", *opts.Text)
	assert.Equal(t, []string{"png"}, opts.Formats)
	assert.Equal(t, 6, opts.Settings.TotalStars)
	assert.Equal(t, fill.Precise, opts.Settings.FillMode)
	assert.Equal(t, 12.5, opts.Settings.FillCorrection)
	assert.Equal(t, 32.0, opts.Settings.StarSize)
	assert.Equal(t, 2.0, opts.Settings.StarMargin)
	assert.Equal(t, settings.RGB(255, 0, 0), opts.Settings.FilledColor)
	assert.Equal(t, settings.Color{G: 255, A: 0x80}, opts.Settings.EmptyColor)
	assert.Equal(t, settings.RGB(255, 255, 255), opts.Background)
	assert.Equal(t, 3.0, opts.Scale)
	assert.Equal(t, 200, opts.PNGWidth)
	assert.True(t, opts.EmbedFont)
}

func TestOptionsFromQueryDefaults(t *testing.T) {
	s := newTestServer(t, nil)

	opts, err := s.optionsFromQuery(url.Values{}, "svg")
	require.NoError(t, err)

	assert.Nil(t, opts.Rating)
	assert.Nil(t, opts.Text)
	assert.Equal(t, settings.Default().TotalStars, opts.Settings.TotalStars)
	assert.True(t, opts.Background.IsTransparent())
}

func TestOptionsFromQueryDoesNotShareBase(t *testing.T) {
	s := newTestServer(t, nil)

	opts, err := s.optionsFromQuery(url.Values{"total": {"3"}}, "svg")
	require.NoError(t, err)
	opts.Settings.StarPoints[0].X = -99

	assert.Equal(t, settings.Default().TotalStars, s.base.TotalStars)
	assert.NotEqual(t, -99.0, s.base.StarPoints[0].X)
}

func TestOptionsFromQueryTextLimit(t *testing.T) {
	s := newTestServer(t, nil)

	long := make([]rune, maxTextLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err := s.optionsFromQuery(url.Values{"text": {string(long)}}, "svg")
	assert.Error(t, err)
}
