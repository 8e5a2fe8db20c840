// Package pipeline provides the render pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: resolve fill levels, compose star units, place them in a row
//     and append the measured text
//  2. Render: produce output in the requested formats (SVG, PNG, JSON)
//
// Each stage can be run on its own. [Runner] adds artifact caching and
// observability hooks on top.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Settings: settings.Default(),
//	    Rating:   pipeline.Float(4.3),
//	    Formats:  []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starbar/pkg/buildinfo"
	"github.com/matzehuels/starbar/pkg/cache"
	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/fonts"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	DefaultArtifactTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Settings is the widget configuration. A zero value means the defaults.
	Settings settings.Settings `json:"settings"`

	// Rating and Text override the values in Settings when set.
	Rating *float64 `json:"rating,omitempty"`
	Text   *string  `json:"text,omitempty"`

	// Render options
	Formats    []string       `json:"formats,omitempty"`
	Scale      float64        `json:"scale,omitempty"`
	PNGWidth   int            `json:"png_width,omitempty"`
	EmbedFont  bool           `json:"embed_font,omitempty"`
	Background settings.Color `json:"background,omitempty"`

	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger         `json:"-"`
	Measurer layout.TextMeasurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Float returns a pointer to v, for [Options.Rating].
func Float(v float64) *float64 { return &v }

// String returns a pointer to s, for [Options.Text].
func String(s string) *string { return &s }

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed star row.
	Layout layout.Result

	// LayoutHash identifies the layout inputs. Artifact cache keys derive
	// from it.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stars      int
	LayoutTime time.Duration
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the settings and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills in the settings, measurer and logger.
func (o *Options) SetLayoutDefaults() {
	if o.Settings.TotalStars == 0 && len(o.Settings.StarPoints) == 0 {
		o.Settings = settings.Default()
	}
	if o.Measurer == nil {
		o.Measurer = fonts.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Settings.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.PNGWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png width must not be negative, got %d", o.PNGWidth)
	}
	return ValidateFormats(o.Formats)
}

// ResolvedRating returns the rating to draw: the override if set, else the
// settings value. NaN becomes 0 and the result is clamped to
// [0, TotalStars] so it can be hashed and reported.
func (o *Options) ResolvedRating() float64 {
	r := o.Settings.Rating
	if o.Rating != nil {
		r = *o.Rating
	}
	if math.IsNaN(r) {
		return 0
	}
	return max(0, min(r, float64(o.Settings.TotalStars)))
}

// ResolvedText returns the label to draw.
func (o *Options) ResolvedText() string {
	if o.Text != nil {
		return *o.Text
	}
	return o.Settings.Text
}

// LayoutKeyOpts returns cache key options for the layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Rating: o.ResolvedRating(),
		Text:   o.ResolvedText(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Version: buildinfo.Version}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
		opts.Width = o.PNGWidth
	case FormatSVG:
		opts.EmbedFont = o.EmbedFont
	}
	if !o.Background.IsTransparent() && format != FormatJSON {
		opts.Background = o.Background.Hex()
	}
	return opts
}
