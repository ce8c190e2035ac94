package pipeline

import (
	"context"
	"time"

	"github.com/ArikGuitarik/album-art-collage/internal/collage"
	"github.com/ArikGuitarik/album-art-collage/internal/imaging"
	"go.uber.org/zap"
)

// Options configures Build.
type Options struct {
	Dir     string
	Output  string
	Height  int
	Width   int
	Quality int

	// HighResOutput receives a second render from the original files at
	// HighResHeight x HighResWidth. Zero sizes skip the pass.
	HighResOutput string
	HighResHeight int
	HighResWidth  int

	// GridLineWidth draws tile separators in GridLineColor when positive.
	GridLineWidth int
	GridLineColor [3]uint8

	Logger *zap.Logger
}

// Result describes a finished build.
type Result struct {
	Collage       *collage.Collage[uint8]
	Output        string
	HighResOutput string // empty if the pass was skipped
	Tiles         int
	Elapsed       time.Duration
}

// Build composes the collage, renders it to opts.Output and, when enabled,
// renders it again from the original files to opts.HighResOutput.
func Build(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()

	c, err := Compose(ctx, opts.Dir, opts.Height, opts.Width, log)
	if err != nil {
		return nil, err
	}
	res := &Result{Collage: c, Output: opts.Output, Tiles: c.Grid().Len()}

	if err := renderAndSave(c, opts.Output, opts, log); err != nil {
		return nil, err
	}

	if opts.HighResHeight > 0 && opts.HighResWidth > 0 {
		if err := reloadOriginals(ctx, c, log); err != nil {
			return nil, err
		}
		if err := c.SetCanvasShape(opts.HighResHeight, opts.HighResWidth); err != nil {
			return nil, err
		}
		if err := renderAndSave(c, opts.HighResOutput, opts, log); err != nil {
			return nil, err
		}
		res.HighResOutput = opts.HighResOutput
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

// reloadOriginals restores every tile to its full-resolution file. A tile
// whose file is gone keeps its current pixels.
func reloadOriginals(ctx context.Context, c *collage.Collage[uint8], log *zap.Logger) error {
	for _, tile := range c.Grid().Elements() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tile.ReloadOriginal(); err != nil {
			log.Warn("keeping resized tile", zap.String("path", tile.Source()), zap.Error(err))
		}
	}
	return nil
}

func renderAndSave(c *collage.Collage[uint8], path string, opts Options, log *zap.Logger) error {
	img, err := c.Render()
	if err != nil {
		return err
	}
	if opts.GridLineWidth > 0 {
		th, tw := c.TileShape()
		imaging.DrawGridLines(img, c.Grid().Side(), th, tw, opts.GridLineWidth, opts.GridLineColor)
	}
	if err := Save(path, img, opts.Quality); err != nil {
		return err
	}
	h, w := img.Shape()
	log.Info("saved collage", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
	return nil
}
