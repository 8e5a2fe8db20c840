package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/pipeline"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

const (
	// stdoutPath writes the single requested format to stdout.
	stdoutPath = "-"

	// defaultBase names output files when --output is not given.
	defaultBase = "stars"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	settings   settingsFlags
	output     string
	formats    string
	scale      float64
	width      int
	embedFont  bool
	background string
	noCache    bool
	refresh    bool
}

// renderCommand creates the render command for writing star rows to files.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a star rating to SVG, PNG or JSON",
		Example: `  starbar render --rating 3.5 --mode half -o rating.svg
  starbar render -r 4.26 -m precise -t "4.26 / 5" -f svg,png -o rating
  starbar render --config stars.toml -f png --width 400 -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == stdoutPath {
				uiOut = cmd.ErrOrStderr()
			}
			s, err := opts.settings.resolve(cmd)
			if err != nil {
				return err
			}
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			bg := settings.Transparent
			if opts.background != "" {
				if bg, err = settings.ParseColor(opts.background); err != nil {
					return err
				}
			}
			if opts.width > 0 && !slices.Contains(formats, pipeline.FormatPNG) {
				printWarning("--width only applies to PNG output")
			}
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return runRender(cmd.Context(), runner, pipeline.Options{
				Settings:   s,
				Formats:    formats,
				Scale:      opts.scale,
				PNGWidth:   opts.width,
				EmbedFont:  opts.embedFont,
				Background: bg,
				Refresh:    opts.refresh,
			}, opts.output, cmd.OutOrStdout())
		},
	}

	opts.settings.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixels per unit")
	cmd.Flags().IntVar(&opts.width, "width", 0, "PNG width in pixels (overrides --scale)")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (default transparent)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// runRender executes the pipeline and writes one file per format. With
// output "-" the single artifact goes to stdout.
func runRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string, stdout io.Writer) error {
	logger := loggerFromContext(ctx)
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if output == stdoutPath && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	prog := newProgress(logger)
	if output == stdoutPath {
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return err
		}
		_, err = stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering stars...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths := outputPaths(output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("wrote artifacts", "files", len(paths), "cached", result.CacheInfo.RenderHit)

	printSuccess("Rendered %s", formatRating(result.Layout.Rating, opts.Settings.TotalStars))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.Stars, result.Stats.Bytes, result.CacheInfo.RenderHit)
	return nil
}

// outputPaths maps each format to a file path. A single format uses output
// as given (adding the extension if missing). Several formats share output
// as a base name with the known extension stripped.
func outputPaths(output string, formats []string) map[string]string {
	base := output
	if base == "" {
		base = defaultBase
	}
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && ext == formats[0] {
		paths[formats[0]] = base
		return paths
	}
	if pipeline.ValidFormats[ext] {
		base = strings.TrimSuffix(base, "."+ext)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// formatRating renders "3.5 / 5" with trailing zeros trimmed.
func formatRating(rating float64, total int) string {
	r := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", rating), "0"), ".")
	return fmt.Sprintf("%s / %d", r, total)
}
