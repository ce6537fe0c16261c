// Package cli provides the command-line interface for mkpalette.
package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/mkpalette/internal/config"
	"github.com/jmylchreest/mkpalette/internal/version"
)

// ErrMissingArgument is returned when --hex-vals is not supplied.
var ErrMissingArgument = errors.New("missing required flag --hex-vals")

// Exit statuses returned by ExitCode.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ExitCode maps an error returned by the root command to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrMissingArgument):
		return ExitUsage
	default:
		return ExitError
	}
}

// NewRootCmd builds the mkpalette command tree. Environment defaults are
// resolved once, when the command is built.
func NewRootCmd() *cobra.Command {
	cfg, envWarnings := config.NewBuilder().
		WithEnvConfig().
		Build()
	opts := &generateOptions{config: cfg}

	rootCmd := &cobra.Command{
		Use:   "mkpalette",
		Short: "Convert hex colours into a C palette table",
		Long: `mkpalette converts a comma-separated list of #RRGGBB colours into a
C array initializer that can be pasted into another program's source.

Examples:
  # Generate a two colour palette
  mkpalette --hex-vals '#FFFFFF,#000000'

  # Declare the second dimension as the colour count
  mkpalette --hex-vals '#FFFFFF,#000000' --dimension count

  # Write the table to a header and a PNG swatch next to it
  mkpalette --hex-vals '#1a2b3c,#ff8000' -o palette.h --swatch palette.png

  # Read a generated table back into hex colours
  mkpalette decode palette.h`,
		Version:      version.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			for _, w := range envWarnings {
				logger.Warn("ignoring environment override", "reason", w)
			}
			return runGenerate(cmd, opts, logger)
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	addGenerateFlags(rootCmd.Flags(), opts)
	rootCmd.SetFlagErrorFunc(flagError)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDecodeCmd())

	return rootCmd
}

// flagError treats a bare --hex-vals like a missing one.
func flagError(cmd *cobra.Command, err error) error {
	var required *pflag.ValueRequiredError
	if errors.As(err, &required) {
		if f := required.GetFlag(); f != nil && f.Name == "hex-vals" {
			printUsage(cmd)
			return ErrMissingArgument
		}
	}
	return err
}

// newLogger creates the stderr logger honouring --verbose and --quiet.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Warn
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        "mkpalette",
		Output:      cmd.ErrOrStderr(),
		Level:       level,
		DisableTime: true,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
