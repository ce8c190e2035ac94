// Package window shows a collage in an ebiten window and lets the user
// rearrange it with the mouse.
//
// Controls:
//   - left click: select a tile, or swap it with the selected one
//   - S: save the current collage
//   - Esc: quit
package window

import (
	"fmt"

	"github.com/ArikGuitarik/album-art-collage/internal/pipeline"
	"github.com/ArikGuitarik/album-art-collage/internal/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Viewer implements ebiten.Game over a viewer.Session.
type Viewer struct {
	session  *viewer.Session
	savePath string
	quality  int
	log      *zap.Logger

	canvas *ebiten.Image
	dirty  bool
}

// New returns a viewer that saves to savePath when S is pressed.
func New(s *viewer.Session, savePath string, quality int, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{session: s, savePath: savePath, quality: quality, log: log, dirty: true}
}

// Update handles input once per tick.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		v.save()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		changed, err := v.session.Click(x, y)
		if err != nil {
			return err
		}
		v.dirty = v.dirty || changed
	}
	return nil
}

// Draw uploads a fresh frame when the collage or selection changed and
// draws it.
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.dirty {
		if err := v.refresh(); err != nil {
			v.log.Error("rendering collage", zap.Error(err))
		}
		v.dirty = false
	}
	if v.canvas != nil {
		screen.DrawImage(v.canvas, nil)
	}
}

// Layout keeps the logical screen at the canvas size.
func (v *Viewer) Layout(_, _ int) (int, int) {
	h, w := v.session.Collage().CanvasShape()
	return w, h
}

func (v *Viewer) refresh() error {
	frame, err := v.session.Frame()
	if err != nil {
		return err
	}
	b := frame.Bounds()
	if v.canvas == nil || v.canvas.Bounds() != b {
		v.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}
	v.canvas.WritePixels(frame.Pix)
	return nil
}

func (v *Viewer) save() {
	img, err := v.session.Render()
	if err != nil {
		v.log.Error("rendering collage", zap.Error(err))
		return
	}
	if err := pipeline.Save(v.savePath, img, v.quality); err != nil {
		v.log.Error("saving collage", zap.Error(err))
		return
	}
	v.log.Info("saved collage", zap.String("path", v.savePath))
}

// Run opens a window sized to the canvas and blocks until it is closed.
func Run(v *Viewer, title string) error {
	h, w := v.session.Collage().CanvasShape()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
