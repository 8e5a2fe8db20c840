// Package sink renders a computed [layout.Result] into output formats.
//
// # Formats
//
//   - SVG: vector output; partial stars use a clipPath
//   - PNG: raster output drawn with gg, optionally resized to an exact width
//   - JSON: the layout itself, for clients that draw their own stars
//   - Terminal: a row of colored star glyphs for CLI previews
//
// Every renderer is a pure function of its input: the same layout and
// options produce the same bytes. SVG clipPath ids are derived from the
// layout content, so several widgets can be inlined in one document
// without id clashes while output stays reproducible.
//
// Basic usage:
//
//	res := layout.Build(s, 4.3, "4.3", fonts.NewMeasurer())
//	svg := sink.RenderSVG(res)
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//
// # Adding New Formats
//
//  1. Create a renderer function: func RenderFoo(r layout.Result, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Register the format name in pkg/pipeline
//
// [layout.Result]: github.com/matzehuels/starbar/pkg/star/layout.Result
package sink
