// Package pipeline turns a directory of album art into saved collages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ArikGuitarik/album-art-collage/internal/collage"
	"github.com/ArikGuitarik/album-art-collage/internal/grid"
	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"go.uber.org/zap"
)

// ErrNoImages is returned when a directory yields no usable image.
var ErrNoImages = errors.New("pipeline: no images")

// LoadDir decodes every file matching dir/*.* in name order. Files that fail
// to decode are logged and skipped; only a missing or unreadable directory
// is an error.
func LoadDir(ctx context.Context, dir string, log *zap.Logger) ([]*imaging.Discrete, error) {
	if log == nil {
		log = zap.NewNop()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image directory: %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.*"))
	if err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}
	slices.Sort(paths)

	images := make([]*imaging.Discrete, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		img, err := imaging.Load(path)
		if err != nil {
			log.Warn("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		images = append(images, img)
	}

	log.Info("loaded images", zap.String("dir", dir), zap.Int("images", len(images)), zap.Int("files", len(paths)))
	return images, nil
}

// Compose loads dir and arranges the largest square number of its images
// into a collage of roughly height x width pixels. Surplus images, last in
// name order, are dropped.
func Compose(ctx context.Context, dir string, height, width int, log *zap.Logger) (*collage.Collage[uint8], error) {
	if log == nil {
		log = zap.NewNop()
	}
	images, err := LoadDir(ctx, dir, log)
	if err != nil {
		return nil, err
	}
	g := grid.NewTruncating(images)
	if g.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImages, dir)
	}
	if dropped := len(images) - g.Len(); dropped > 0 {
		log.Info("dropping surplus images", zap.Int("dropped", dropped), zap.Int("side", g.Side()))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return collage.New(g, height, width, collage.WithLogger(log))
}
