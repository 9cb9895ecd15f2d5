// Package core provides the screen buffer, geometry, input and pixel mask
// types shared by the games and the platform. It has no external
// dependencies (especially no Bubble Tea) so game logic stays pure and
// testable.
package core

import (
	"cmp"
	"math"
)

// Rect is a rectangle of screen cells.
type Rect struct {
	X, Y int // top-left cell
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Centered returns a w×h rectangle centered within r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// Abs returns the absolute value of v.
func Abs[T ~int | ~int64 | ~float64](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Round converts a world coordinate to an integer pixel.
// Halves round to even.
func Round(v float64) int {
	return int(math.RoundToEven(v))
}

// Project maps a world coordinate onto a grid of cells.
// worldSize is the extent of the world axis, cells the number of cells.
func Project(v float64, worldSize float64, cells int) int {
	if worldSize <= 0 {
		return 0
	}
	return int(math.Floor(v * float64(cells) / worldSize))
}
