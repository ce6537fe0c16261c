package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/mkpalette/internal/colour"
	"github.com/jmylchreest/mkpalette/internal/config"
	"github.com/jmylchreest/mkpalette/internal/ctable"
	"github.com/jmylchreest/mkpalette/internal/highlight"
	"github.com/jmylchreest/mkpalette/internal/swatch"
)

// usageExample is printed when --hex-vals is missing.
const usageExample = "--hex-vals '#FFFFFF,#000000'"

type generateOptions struct {
	config config.Config

	hexVals    string
	output     string
	name       string
	preview    bool
	swatchPath string
	swatchSize int
}

func addGenerateFlags(fs *pflag.FlagSet, opts *generateOptions) {
	fs.StringVar(&opts.hexVals, "hex-vals", "", "comma separated list of #RRGGBB colours")
	fs.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&opts.name, "name", ctable.DefaultName, "C identifier for the array")
	fs.Var(&opts.config.Dimension, "dimension", "second array dimension (channels = 3, count = number of colours)")
	fs.Var(&opts.config.Color, "color", "highlight output (auto, always, never)")
	fs.StringVar(&opts.config.Style, "style", opts.config.Style, "highlighting style")
	fs.BoolVar(&opts.preview, "preview", false, "show colour previews on stderr")
	fs.StringVar(&opts.swatchPath, "swatch", "", "also write a PNG swatch to this file")
	fs.IntVar(&opts.swatchSize, "swatch-size", swatch.DefaultCellSize, "swatch cell size in pixels")
}

// runGenerate executes the root command.
func runGenerate(cmd *cobra.Command, opts *generateOptions, logger hclog.Logger) error {
	if !cmd.Flags().Changed("hex-vals") {
		printUsage(cmd)
		return ErrMissingArgument
	}

	opts.config.Style = strings.ToLower(opts.config.Style)
	if !highlight.StyleExists(opts.config.Style) {
		return fmt.Errorf("unknown style: %s (available: %s)",
			opts.config.Style, strings.Join(highlight.StyleNames(), ", "))
	}

	palette, err := colour.ParseHexList(opts.hexVals)
	if err != nil {
		return fmt.Errorf("invalid --hex-vals: %w", err)
	}
	logger.Debug("parsed colours", "count", palette.Len())

	// Nothing is written until every requested output is known to succeed.
	if opts.swatchPath != "" {
		if err := swatch.Validate(palette, opts.swatchSize); err != nil {
			return fmt.Errorf("invalid --swatch-size: %w", err)
		}
	}

	text, err := ctable.String(palette, ctable.Options{
		Name:      opts.name,
		Dimension: opts.config.Dimension.Dimension,
	})
	if err != nil {
		return fmt.Errorf("failed to render palette: %w", err)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil { // #nosec G306 - generated source is not secret
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "path", opts.output, "bytes", len(text))
	} else if err := writeTable(cmd.OutOrStdout(), text, opts.config, logger); err != nil {
		return err
	}

	if opts.preview {
		fmt.Fprint(cmd.ErrOrStderr(), colour.PreviewPalette(palette, 8))
	}

	if opts.swatchPath != "" {
		if err := swatch.WriteFile(opts.swatchPath, palette, opts.swatchSize); err != nil {
			return err
		}
		logger.Debug("wrote swatch", "path", opts.swatchPath, "cell_size", opts.swatchSize)
	}

	return nil
}

// printUsage prints the one-line usage notice shown when --hex-vals is
// missing or has no value.
func printUsage(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "Usage: ./%s %s\n", cmd.Root().Name(), usageExample)
}

// writeTable writes the rendered table, highlighted when the colour mode
// asks for it.
func writeTable(w io.Writer, text string, cfg config.Config, logger hclog.Logger) error {
	highlighted := false
	switch cfg.Color {
	case config.ColorAlways:
		highlighted = true
	case config.ColorAuto:
		highlighted = highlight.IsTerminal(w)
	}
	logger.Debug("writing palette", "highlight", highlighted, "style", cfg.Style)

	if highlighted {
		if err := highlight.Highlight(w, text, cfg.Style, highlight.DefaultFormatter); err != nil {
			return fmt.Errorf("failed to highlight output: %w", err)
		}
		return nil
	}

	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
