package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/mkpalette/internal/colour"
	"github.com/jmylchreest/mkpalette/internal/compression"
	"github.com/jmylchreest/mkpalette/internal/ctable"
)

func newDecodeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Read a generated palette table back into hex colours",
		Long: `Read a table produced by mkpalette and print its colours.

The input may be gzip, bzip2, zstd or xz compressed. With no file, or when
the file is "-", the table is read from stdin.

Examples:
  # One hex colour per line
  mkpalette decode palette.h

  # A single list that can be passed back to --hex-vals
  mkpalette decode --format list palette.h.xz

  # Index, hex and rgb columns
  mkpalette decode -f table < palette.h`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runDecode(cmd, path, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "hex", "output format (hex, list, table, json)")
	return cmd
}

func runDecode(cmd *cobra.Command, path, format string) error {
	logger := newLogger(cmd)

	var (
		in       io.ReadCloser
		detected compression.Format
		err      error
	)
	if path == "-" {
		in, detected, err = compression.NewReader(cmd.InOrStdin())
	} else {
		in, detected, err = compression.Open(path)
	}
	if err != nil {
		return err
	}
	defer in.Close()
	logger.Debug("reading table", "path", path, "compression", detected)

	table, err := ctable.Parse(in)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	logger.Debug("decoded table", "name", table.Name, "dimension", table.Dimension(), "colours", table.Palette.Len())

	output, err := formatDecoded(table.Palette, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), output)
	return err
}

// formatDecoded formats the palette according to the specified format.
func formatDecoded(palette *colour.Palette, format string) (string, error) {
	switch format {
	case "hex":
		output := ""
		for _, hex := range palette.ToHex() {
			output += hex + "\n"
		}
		return output, nil
	case "list":
		return palette.HexList() + "\n", nil
	case "table":
		t := NewTable([]string{"#", "HEX", "RGB"})
		for i, c := range palette.Colors {
			t.AddRow([]string{strconv.Itoa(i + 1), c.Hex(), c.String()})
		}
		return t.Render(), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, list, table, json)", format)
	}
}
