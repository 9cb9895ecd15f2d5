package drake

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/drake-arcade/internal/core"
)

// Visual characters for rendering
const (
	DrakeChar     = '█'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '▀'
	GroundMark    = '┴'
	CloudChar     = '░'
	StarChar      = '·'
	GuideChar     = '•'
)

// Decorations placed within one background/sky tile, in world pixels.
var (
	starField = [...]struct{ x, y float64 }{
		{20, 140}, {75, 420}, {130, 260}, {190, 600}, {240, 90},
		{300, 480}, {350, 200}, {410, 680}, {460, 330}, {30, 720},
		{95, 560}, {265, 370}, {390, 120}, {480, 540},
	}
	cloudField = [...]float64{40, 210, 430, 560}
)

const (
	groundMarkSpacing = 56
	cloudWidth        = 60
)

// Renderer projects a world onto a terminal screen.
type Renderer struct {
	dst    *core.Screen
	world  *World
	worldW float64
	worldH float64
}

// NewRenderer creates a renderer for one frame.
func NewRenderer(dst *core.Screen, w *World) Renderer {
	cfg := w.Config()
	return Renderer{
		dst:    dst,
		world:  w,
		worldW: float64(cfg.World.Width),
		worldH: float64(cfg.World.Height),
	}
}

func (r Renderer) col(px float64) int {
	return core.Project(px, r.worldW, r.dst.Width())
}

func (r Renderer) row(py float64) int {
	return core.Project(py, r.worldH, r.dst.Height())
}

// groundRow returns the first screen row covered by the ground.
func (r Renderer) groundRow() int {
	return min(r.row(r.world.Ground.Y), r.dst.Height()-1)
}

// Scenery draws background stars, sky clouds and the pipes.
func (r Renderer) Scenery() {
	w := r.world

	for _, tile := range []float64{w.Background.X1, w.Background.X2} {
		for _, s := range starField {
			if s.x >= w.Background.Width {
				continue
			}
			r.dst.SetColored(r.col(tile+s.x), r.row(s.y), StarChar, core.ColorStar)
		}
	}

	skyRow := r.row(w.Sky.Y)
	for _, tile := range []float64{w.Sky.X1, w.Sky.X2} {
		for _, cx := range cloudField {
			if cx >= w.Sky.Width {
				continue
			}
			x0, x1 := r.col(tile+cx), r.col(tile+cx+cloudWidth)
			for x := x0; x <= x1; x++ {
				r.dst.SetColored(x, skyRow, CloudChar, core.ColorSky)
			}
		}
	}

	for _, p := range w.Pipes.Pipes() {
		r.pipe(p)
	}
}

// pipe draws both segments of a pipe, clipped to the play-field.
func (r Renderer) pipe(p *Pipe) {
	x0 := r.col(float64(p.X))
	x1 := max(r.col(float64(p.Right())), x0+1)
	gapTop := r.row(float64(p.Height))
	gapBottom := r.row(float64(p.Bottom))
	ground := r.groundRow()

	for x := x0; x < x1; x++ {
		for y := 0; y < gapTop && y < ground; y++ {
			r.dst.SetColored(x, y, PipeChar, core.ColorPipe)
		}
		if gapTop > 0 && gapTop <= ground {
			r.dst.SetColored(x, gapTop-1, PipeCapTop, core.ColorPipe)
		}
		for y := gapBottom; y < ground; y++ {
			r.dst.SetColored(x, y, PipeChar, core.ColorPipe)
		}
		if gapBottom < ground {
			r.dst.SetColored(x, gapBottom, PipeCapBottom, core.ColorPipe)
		}
	}
}

// Ground draws the scrolling ground strip.
func (r Renderer) Ground() {
	g := r.world.Ground
	y0 := r.groundRow()

	for y := y0; y < r.dst.Height(); y++ {
		r.dst.DrawHLine(0, y, r.dst.Width(), GroundChar, core.ColorGround)
	}
	for _, tile := range []float64{g.X1, g.X2} {
		for local := 0.0; local < g.Width; local += groundMarkSpacing {
			r.dst.SetColored(r.col(tile+local), y0, GroundMark, core.ColorGround)
		}
	}
}

// Drake draws a drake by sampling its mask at each cell centre.
func (r Renderer) Drake(d *Drake, c core.Color) {
	mask := d.Mask()
	x0, x1 := r.col(d.X), r.col(d.X+float64(d.Width()))
	y0, y1 := r.row(d.Y), r.row(d.Y+float64(d.SpriteHeight()))
	cellW := r.worldW / float64(r.dst.Width())
	cellH := r.worldH / float64(r.dst.Height())

	drawn := false
	for y := y0; y <= y1; y++ {
		my := int((float64(y)+0.5)*cellH - d.Y)
		last := -1
		for x := x0; x <= x1; x++ {
			mx := int((float64(x)+0.5)*cellW - d.X)
			if mask.Get(mx, my) {
				r.dst.SetColored(x, y, DrakeChar, c)
				last = x
				drawn = true
			}
		}
		if last >= 0 && y == (y0+y1)/2 {
			r.dst.SetColored(last, y, noseGlyph(d.Tilt), c)
		}
	}

	// Screens too coarse to hit an opaque pixel still show the drake.
	if !drawn {
		r.dst.SetColored((x0+x1)/2, (y0+y1)/2, noseGlyph(d.Tilt), c)
	}
}

// noseGlyph picks a head glyph matching the drake's tilt.
func noseGlyph(tilt float64) rune {
	switch {
	case tilt >= 10:
		return '◥'
	case tilt <= -45:
		return '◢'
	default:
		return '▶'
	}
}

// Guide draws lines from the drake's centre to both edges of the gap of
// the pipe at index. A pipe index past the end of the track is skipped.
func (r Renderer) Guide(d *Drake, index int) {
	p, ok := r.world.Pipes.At(index)
	if !ok {
		return
	}
	cx := r.col(d.X + float64(d.Width())/2)
	cy := r.row(d.Y + float64(d.SpriteHeight())/2)
	px := r.col(float64(p.X) + float64(p.shape.Width)/2)

	r.dst.DrawLine(cx, cy, px, r.row(float64(p.Height)), GuideChar, core.ColorGuide)
	r.dst.DrawLine(cx, cy, px, r.row(float64(p.Bottom)), GuideChar, core.ColorGuide)
}

// Score draws the score in the top-right corner.
func (r Renderer) Score(score int) {
	text := fmt.Sprintf(" %d ", score)
	r.dst.DrawTextColored(r.dst.Width()-len(text)-1, 0, text, core.ColorHUD)
}

// Lines draws HUD lines in the top-left corner.
func (r Renderer) Lines(lines ...string) {
	for i, l := range lines {
		r.dst.DrawTextColored(1, i, " "+l+" ", core.ColorHUD)
	}
}

// DrawBanner draws a message box in the center of the screen.
func DrawBanner(dst *core.Screen, title, subtitle string) {
	tw, sw := utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)
	box := dst.Bounds().Centered(max(tw, sw)+4, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(box.W-tw)/2, box.Y+1, title, core.ColorHUD)
	dst.DrawText(box.X+(box.W-sw)/2, box.Y+3, subtitle)
}
