package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// held keys repeat every tick; the rest fire once per press.
var (
	heldKeys = map[core.Action][]ebiten.Key{
		core.ActionLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		core.ActionRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	}
	pressedKeys = map[core.Action][]ebiten.Key{
		core.ActionJump:     {ebiten.KeySpace},
		core.ActionMultiply: {ebiten.KeyM},
		core.ActionPause:    {ebiten.KeyP, ebiten.KeyEscape},
		core.ActionRestart:  {ebiten.KeyR},
		core.ActionQuit:     {ebiten.KeyQ},
	}
)

// sampleInput reads the keyboard and mouse for one tick.
func (f *Frontend) sampleInput() core.InputFrame {
	in := core.NewInputFrame()

	for action, keys := range heldKeys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				in.Set(action)
			}
		}
	}
	for action, keys := range pressedKeys {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				in.Set(action)
			}
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionMultiply)
	}

	// Cursor coordinates are in field units because Layout returns the
	// field size.
	x, y := ebiten.CursorPosition()
	w, h := f.Layout(0, 0)
	if x >= 0 && x < w && y >= 0 && y < h {
		in.SetPointer(float64(x) / float64(w))
	}

	return in
}
