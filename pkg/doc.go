// Package pkg provides the core libraries for starbar star-rating widgets.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. star/... - Domain logic (fill levels, star geometry, composition, layout, output)
//  2. [pipeline] - Orchestration (settings → layout → render) with caching
//  3. Supporting packages: [cache], [fonts], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The data flow for one widget:
//
//	settings.Settings + rating + text
//	         ↓
//	    [star/fill] package (fill fraction per star)
//	         ↓
//	    [star/compose] package (layers per star: empty base, filled overlay)
//	         ↓
//	    [star/layout] package (row placement + measured text)
//	         ↓
//	    [star/sink] package (SVG, PNG, JSON, terminal)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Rating:  pipeline.Float(3.5),
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("stars.svg", result.Artifacts["svg"], 0644)
//
// [star/fill]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/star/fill
// [star/compose]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/star/compose
// [star/layout]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/star/layout
// [star/sink]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/star/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/fonts
// [observability]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/starbar/pkg/buildinfo
package pkg
