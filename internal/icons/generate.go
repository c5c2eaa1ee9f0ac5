// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package icons

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/base/logger"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Config represents a generation configuration.
type Config struct {
	// Src is the source image. If empty, uses icon.png.
	Src string
	// Dir is the directory where to write icons. If empty, uses the current
	// directory.
	Dir string
	// Specs are the icons to generate. If nil, uses DefaultSpecs.
	Specs []Spec
	// Filter is the resampling filter. Defaults to Lanczos.
	Filter Filter
	// Stdout receives a human-readable report. If nil, the report is
	// discarded.
	Stdout io.Writer
}

func (c *Config) setDefaults() {
	if c.Src == "" {
		c.Src = "icon.png"
	}
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.Specs == nil {
		c.Specs = DefaultSpecs
	}
	if c.Stdout == nil {
		c.Stdout = io.Discard
	}
}

// Load decodes the image at path and converts it to NRGBA with the origin at
// (0, 0).
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s (%s): %w", path, format, errEmptyImage)
	}
	return imaging.Clone(img), nil
}

// Save writes img to path as PNG.
func Save(path string, img image.Image) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// Generate writes all icons described by c.Specs from c.Src.
//
// If the source doesn't exist, Generate returns ErrSourceMissing without
// writing anything. Otherwise the first failure stops the batch, leaving
// already written icons in place.
func Generate(ctx context.Context, c *Config) error {
	if c == nil {
		c = &Config{}
	}
	c.setDefaults()

	if _, err := os.Stat(c.Src); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, c.Src)
	} else if err != nil {
		return err
	}

	src, err := Load(c.Src)
	if err != nil {
		return err
	}
	logger.Info(ctx, "loaded source icon",
		slog.String("path", c.Src),
		slog.Int("width", src.Rect.Dx()),
		slog.Int("height", src.Rect.Dy()),
		slog.String("content", ContentBounds(src).String()),
	)

	fmt.Fprintln(c.Stdout, "Optimizing Flow Guardian extension icon...")
	fmt.Fprintf(c.Stdout, "Source: %s\n", filepath.Base(c.Src))
	fmt.Fprintln(c.Stdout, "Crop: Removing excess transparent padding")
	fmt.Fprint(c.Stdout, "Enhancement: Increasing visual weight at small sizes\n\n")

	for _, spec := range c.Specs {
		path := filepath.Join(c.Dir, spec.Filename)
		if err := Save(path, Process(src, spec.Size, c.Filter)); err != nil {
			return fmt.Errorf("writing %s: %w", spec.Filename, err)
		}
		logger.Info(ctx, "wrote icon",
			slog.String("path", path),
			slog.Int("size", spec.Size),
			slog.Bool("enhanced", NeedsEnhance(spec.Size)),
			slog.String("filter", c.Filter.String()),
		)
		fmt.Fprintf(c.Stdout, "✓ Created %s (%d×%d)\n", spec.Filename, spec.Size, spec.Size)
	}

	fmt.Fprint(c.Stdout, "\n✓ Icon optimization complete!\n\nNext steps:\n")
	fmt.Fprintln(c.Stdout, "1. Update manifest.json to use individual icon files")
	fmt.Fprintln(c.Stdout, "2. Reload extension in Chrome/Edge")
	fmt.Fprintln(c.Stdout, "3. Verify only ONE icon appears on Extensions page")
	return nil
}
