// Package ctable renders palettes as C array initializers and reads them back.
package ctable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/mkpalette/internal/colour"
)

// ChannelCount is the width of one palette row.
const ChannelCount = 3

// DefaultName is the array identifier used when none is configured.
const DefaultName = "palette"

// Dimension selects what the second array dimension is declared as.
type Dimension int

const (
	// DimensionChannels declares the fixed row width: palette[][3].
	DimensionChannels Dimension = iota
	// DimensionCount declares the number of colours: palette[][N].
	// Older generated headers used this shape.
	DimensionCount
)

// String returns the flag spelling of the dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionChannels:
		return "channels"
	case DimensionCount:
		return "count"
	default:
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
}

// ParseDimension converts a flag value into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(s) {
	case "channels", "3":
		return DimensionChannels, nil
	case "count":
		return DimensionCount, nil
	}
	return DimensionChannels, fmt.Errorf("invalid dimension: %s (valid: channels, count)", s)
}

// Options controls how a palette is rendered.
type Options struct {
	Name      string
	Dimension Dimension
}

// DefaultOptions returns the options producing static int palette[][3].
func DefaultOptions() Options {
	return Options{Name: DefaultName, Dimension: DimensionChannels}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks that the options can produce a compilable declaration.
func (o Options) Validate() error {
	if !identRe.MatchString(o.Name) {
		return fmt.Errorf("invalid array name %q: must be a C identifier", o.Name)
	}
	if o.Dimension != DimensionChannels && o.Dimension != DimensionCount {
		return fmt.Errorf("invalid dimension: %s", o.Dimension)
	}
	return nil
}

func (o Options) declaredWidth(p *colour.Palette) int {
	if o.Dimension == DimensionCount {
		return p.Len()
	}
	return ChannelCount
}

// Render writes the palette as a C array initializer:
//
//	static int palette[][3] = {
//	  {255, 255, 255},
//	};
func Render(w io.Writer, p *colour.Palette, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "static int %s[][%d] = {\n", opts.Name, opts.declaredWidth(p))
	for _, c := range p.Colors {
		fmt.Fprintf(bw, "  {%d, %d, %d},\n", c.R, c.G, c.B)
	}
	bw.WriteString("};\n")
	return bw.Flush()
}

// String renders the palette and returns the text.
func String(p *colour.Palette, opts Options) (string, error) {
	var b strings.Builder
	if err := Render(&b, p, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ErrInvalidTable is returned when input is not a generated palette table.
var ErrInvalidTable = errors.New("invalid palette table")

// Table is a palette read back from a generated declaration.
type Table struct {
	Name string
	// Width is the declared second dimension.
	Width   int
	Palette *colour.Palette
}

// Dimension reports which shape the declaration used. A table of exactly
// three colours is reported as DimensionChannels.
func (t *Table) Dimension() Dimension {
	if t.Width != ChannelCount && t.Width == t.Palette.Len() {
		return DimensionCount
	}
	return DimensionChannels
}

var (
	headerRe = regexp.MustCompile(`static\s+int\s+([A-Za-z_][A-Za-z0-9_]*)\s*\[\s*\]\s*\[\s*(\d+)\s*\]\s*=\s*\{`)
	rowRe    = regexp.MustCompile(`^\{\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\}\s*,?`)
	footerRe = regexp.MustCompile(`^\}\s*;`)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTable, fmt.Sprintf(format, args...))
}

// Parse reads a declaration produced by Render. Whitespace between tokens is
// not significant; text before the declaration is ignored.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	src := string(data)

	loc := headerRe.FindStringSubmatchIndex(src)
	if loc == nil {
		return nil, invalidf("no static int <name>[][N] declaration found")
	}
	table := &Table{Name: src[loc[2]:loc[3]]}
	table.Width, err = strconv.Atoi(src[loc[4]:loc[5]])
	if err != nil {
		return nil, invalidf("bad dimension %q", src[loc[4]:loc[5]])
	}

	rest := src[loc[1]:]
	var colors []colour.RGB
	for {
		rest = strings.TrimLeft(rest, " \t\r\n")
		if rest == "" {
			return nil, invalidf("missing closing };")
		}
		if footerRe.MatchString(rest) {
			break
		}
		m := rowRe.FindStringSubmatch(rest)
		if m == nil {
			return nil, invalidf("row %d: expected {r, g, b}", len(colors)+1)
		}
		var ch [3]uint8
		for i := range ch {
			v, err := strconv.ParseUint(m[i+1], 10, 8)
			if err != nil {
				return nil, invalidf("row %d: channel value %s out of range 0-255", len(colors)+1, m[i+1])
			}
			ch[i] = uint8(v)
		}
		colors = append(colors, colour.RGB{R: ch[0], G: ch[1], B: ch[2]})
		rest = rest[len(m[0]):]
	}

	if table.Width != ChannelCount && table.Width != len(colors) {
		return nil, invalidf("declared dimension %d matches neither %d channels nor %d colours",
			table.Width, ChannelCount, len(colors))
	}

	table.Palette = colour.NewPalette(colors)
	return table, nil
}
