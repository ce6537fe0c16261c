// Package swatch draws a palette as a strip of labelled colour cells.
package swatch

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/mkpalette/internal/colour"
)

const (
	// DefaultCellSize is the edge length of one colour cell in pixels.
	DefaultCellSize = 64
	// MinCellSize is the smallest accepted cell.
	MinCellSize = 4
	// MaxCellSize bounds the image size.
	MaxCellSize = 1024
)

// labelFace draws the hex code on each cell.
var labelFace = basicfont.Face7x13

// labelWidth is the pixel width of a "#rrggbb" label.
func labelWidth() int {
	return font.MeasureString(labelFace, "#000000").Ceil()
}

// Validate reports whether Render would accept the palette and cell size.
func Validate(p *colour.Palette, cellSize int) error {
	if p.Len() == 0 {
		return fmt.Errorf("cannot draw an empty palette")
	}
	if cellSize < MinCellSize || cellSize > MaxCellSize {
		return fmt.Errorf("invalid cell size %d (valid: %d-%d)", cellSize, MinCellSize, MaxCellSize)
	}
	return nil
}

// Render draws one square cell per colour, left to right. Cells wide enough
// for the hex code are labelled in black or white, whichever reads better.
func Render(p *colour.Palette, cellSize int) (*image.RGBA, error) {
	if err := Validate(p, cellSize); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, cellSize*p.Len(), cellSize))
	labelled := cellSize >= labelWidth()+4

	for i, c := range p.Colors {
		cell := image.Rect(i*cellSize, 0, (i+1)*cellSize, cellSize)
		draw.Draw(img, cell, image.NewUniform(c), image.Point{}, draw.Src)

		if !labelled {
			continue
		}
		metrics := labelFace.Metrics()
		textHeight := (metrics.Ascent + metrics.Descent).Ceil()
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colour.ReadableOn(c)),
			Face: labelFace,
			Dot: fixed.P(
				cell.Min.X+(cellSize-labelWidth())/2,
				(cellSize-textHeight)/2+metrics.Ascent.Ceil(),
			),
		}
		d.DrawString(c.Hex())
	}

	return img, nil
}

// Encode renders the palette and writes it to w as PNG.
func Encode(w io.Writer, p *colour.Palette, cellSize int) error {
	img, err := Render(p, cellSize)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}

// WriteFile writes the swatch PNG to path. The file is only created once the
// image has been drawn, and is removed again if encoding fails.
func WriteFile(path string, p *colour.Palette, cellSize int) error {
	img, err := Render(p, cellSize)
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 - user supplied output path
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}

	encErr := png.Encode(f, img)
	closeErr := f.Close()
	if encErr != nil || closeErr != nil {
		os.Remove(path)
	}
	if encErr != nil {
		return fmt.Errorf("failed to encode swatch: %w", encErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close swatch file: %w", closeErr)
	}
	return nil
}
