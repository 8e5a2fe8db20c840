package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/starbar/pkg/errors"
	"github.com/matzehuels/starbar/pkg/star/settings"
)

// configCommand creates the settings file command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect settings files",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand writes the default settings as TOML.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default settings to a TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return settings.WriteFile(cmd.OutOrStdout(), settings.Default())
			}
			path := args[0]
			if err := errors.ValidateOutputPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := settings.WriteFile(f, settings.Default()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Wrote default settings")
			printFile(path)
			printNextStep("Render with", fmt.Sprintf("%s render --config %s", appName, path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand prints the resolved settings.
func (c *CLI) configShowCommand() *cobra.Command {
	var (
		flags  settingsFlags
		asTOML bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the settings after applying the file and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if asTOML {
				return settings.WriteFile(cmd.OutOrStdout(), s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render("Settings"))
			fmt.Fprintln(cmd.OutOrStdout(), settingsTable(s))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML")
	return cmd
}

// settingsTable lays out the settings as a two-column table.
func settingsTable(s settings.Settings) string {
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	rows := [][]string{
		{"rating", num(s.Rating)},
		{"text", strconv.Quote(s.Text)},
		{"total_stars", strconv.Itoa(s.TotalStars)},
		{"fill_mode", s.FillMode.String()},
		{"fill_correction", num(s.FillCorrection)},
		{"star_size", num(s.StarSize)},
		{"star_margin", num(s.StarMargin)},
		{"filled_color", s.FilledColor.String()},
		{"empty_color", s.EmptyColor.String()},
		{"empty_border_width", num(s.EmptyBorderWidth)},
		{"star_points", strconv.Itoa(len(s.StarPoints))},
		{"text_color", s.TextColor.String()},
		{"font", fmt.Sprintf("%s %spt", s.Font.Family, num(s.Font.PointSize))},
		{"text_margin", num(s.TextMargin)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("key", "value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true).Foreground(colorAmber)
			case col == 0:
				return style.Foreground(colorGray)
			default:
				return style.Foreground(colorWhite)
			}
		}).
		String()
}
