package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var (
	backgroundColor = color.RGBA{0x10, 0x10, 0x18, 0xff}
	paddleColor     = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	ballColor       = color.White
	hudColor        = color.RGBA{0xc8, 0xc8, 0xc8, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

const (
	hudMargin   = 8
	hudBaseline = 16
	lineHeight  = 18
)

// blockColor converts a block id to its display colour.
func blockColor(id uint8) color.RGBA {
	r, g, b := breakout.BlockRGB(id)
	return color.RGBA{r, g, b, 0xff}
}

// Draw renders the current frame.
func (f *Frontend) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	frame := f.game.View()
	h := float32(frame.BlockHalfSize)

	for _, b := range frame.Blocks {
		x := float32(b.Position.X) - h
		y := float32(b.Position.Y) - h
		vector.DrawFilledRect(screen, x, y, 2*h, 2*h, blockColor(b.ID), false)
	}

	p := frame.Paddle
	vector.DrawFilledRect(screen, float32(p.Min.X), float32(p.Min.Y),
		float32(p.Width()), float32(p.Height()), paddleColor, false)

	for _, b := range frame.Balls {
		vector.DrawFilledCircle(screen, float32(b.Position.X), float32(b.Position.Y),
			float32(b.Radius), ballColor, true)
	}

	drawHUD(screen, frame)
	drawOverlay(screen, frame)
}

func drawHUD(screen *ebiten.Image, frame breakout.Frame) {
	score, lives, level := frame.HUD()
	w := screen.Bounds().Dx()

	drawText(screen, score, hudMargin, hudBaseline)
	drawText(screen, lives, (w-textWidth(lives))/2, hudBaseline)
	drawText(screen, level, w-hudMargin-textWidth(level), hudBaseline)
}

func drawOverlay(screen *ebiten.Image, frame breakout.Frame) {
	title, subtitle := frame.Overlay()
	if title == "" && subtitle == "" {
		return
	}

	b := screen.Bounds()
	cx, cy := b.Dx()/2, b.Dy()/2

	if title == "" {
		// Serve hints sit below the paddle without a backdrop.
		drawText(screen, subtitle, cx-textWidth(subtitle)/2, b.Dy()-hudMargin)
		return
	}

	boxW := max(textWidth(title), textWidth(subtitle)) + 4*hudMargin
	boxH := 3 * lineHeight
	vector.DrawFilledRect(screen, float32(cx-boxW/2), float32(cy-boxH/2),
		float32(boxW), float32(boxH), overlayColor, false)
	vector.StrokeRect(screen, float32(cx-boxW/2), float32(cy-boxH/2),
		float32(boxW), float32(boxH), 1, hudColor, false)

	drawText(screen, title, cx-textWidth(title)/2, cy-lineHeight/4)
	drawText(screen, subtitle, cx-textWidth(subtitle)/2, cy+lineHeight-lineHeight/4)
}

// drawText draws s with its baseline at y.
func drawText(screen *ebiten.Image, s string, x, y int) {
	text.Draw(screen, s, basicfont.Face7x13, x, y, hudColor)
}

func textWidth(s string) int {
	return text.BoundString(basicfont.Face7x13, s).Dx()
}
