package texture

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/sync/errgroup"
)

// Load decodes one texture per path and returns them as an atlas in path
// order. Files are decoded concurrently; the first failure cancels the rest.
func Load(ctx context.Context, paths []string) (*Atlas, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no texture paths given")
	}

	textures := make([]*Texture, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(path)
			if err != nil {
				return err
			}
			textures[i] = FromImage(img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewAtlas(textures...)
}

// decodeFile reads a BMP or PNG bitmap.
func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		img, err = bmp.Decode(f)
	case ".png":
		img, err = png.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported texture format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

// Save writes t to path as BMP or PNG depending on the extension.
func Save(path string, t *Texture) error {
	return WriteImage(path, t.Image())
}

// WriteImage encodes img to path as BMP or PNG depending on the extension.
func WriteImage(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".bmp" && ext != ".png" {
		return fmt.Errorf("unsupported image format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if ext == ".bmp" {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
