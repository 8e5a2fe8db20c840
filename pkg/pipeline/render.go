package pipeline

import (
	"fmt"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/star/layout"
	"github.com/matzehuels/starbar/pkg/star/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l layout.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, buildPNGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONSettings(opts.Settings))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.EmbedFont {
		svgOpts = append(svgOpts, sink.WithEmbeddedFont())
	}
	if !opts.Background.IsTransparent() {
		svgOpts = append(svgOpts, sink.WithBackground(opts.Background))
	}
	return svgOpts
}

func buildPNGOptions(opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.PNGWidth > 0 {
		pngOpts = append(pngOpts, sink.WithWidth(opts.PNGWidth))
	}
	if !opts.Background.IsTransparent() {
		pngOpts = append(pngOpts, sink.WithPNGBackground(opts.Background))
	}
	return pngOpts
}
