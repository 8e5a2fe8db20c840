package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/starbar/pkg/pipeline"
	"github.com/matzehuels/starbar/pkg/star/sink"
)

// previewCommand prints the star row to the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags settingsFlags
		ascii bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show a star rating in the terminal",
		Example: `  starbar preview --rating 3.5 --mode half
  starbar preview -r 4.2 -t "4.2 out of 5" --ascii`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			logger := commandLogger(cmd)
			opts := pipeline.Options{Settings: s, Logger: logger}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			l := pipeline.GenerateLayout(opts)
			logger.Debug("computed layout", "stars", len(l.Stars), "levels", l.Levels)

			out := cmd.OutOrStdout()
			termOpts := []sink.TerminalOption{sink.WithRenderer(lipgloss.NewRenderer(out))}
			if ascii {
				termOpts = append(termOpts, sink.WithGlyphs(sink.ASCIIGlyphs))
			}
			_, err = fmt.Fprintln(out, sink.RenderTerminal(l, termOpts...))
			return err
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&ascii, "ascii", false, "use ASCII glyphs instead of star symbols")
	return cmd
}
