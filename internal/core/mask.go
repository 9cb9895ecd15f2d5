package core

import "math/bits"

// Mask is a per-pixel opacity map used for exact sprite collision.
// Rows are packed into 64-bit words, least significant bit first.
type Mask struct {
	width  int
	height int
	stride int // words per row
	bits   []uint64
}

// NewMask creates an empty (fully transparent) mask.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	stride := (width + 63) / 64
	return &Mask{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]uint64, stride*height),
	}
}

// MaskFromRows builds a mask from text art. Spaces and dots are
// transparent, every other rune is opaque. Short rows are padded.
func MaskFromRows(rows []string) *Mask {
	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	m := NewMask(width, len(rows))
	for y, row := range rows {
		x := 0
		for _, r := range row {
			if r != ' ' && r != '.' {
				m.Set(x, y, true)
			}
			x++
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int {
	return m.width
}

// Height returns the mask height in pixels.
func (m *Mask) Height() int {
	return m.height
}

// Set marks a pixel opaque or transparent. Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, opaque bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	i := y*m.stride + x/64
	bit := uint64(1) << uint(x%64)
	if opaque {
		m.bits[i] |= bit
	} else {
		m.bits[i] &^= bit
	}
}

// Get reports whether a pixel is opaque. Out-of-bounds pixels are transparent.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.stride+x/64]&(uint64(1)<<uint(x%64)) != 0
}

// Count returns the number of opaque pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// FlipVertical returns a copy of the mask mirrored top to bottom.
func (m *Mask) FlipVertical() *Mask {
	out := NewMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		src := m.bits[y*m.stride : (y+1)*m.stride]
		dst := out.bits[(m.height-1-y)*m.stride : (m.height-y)*m.stride]
		copy(dst, src)
	}
	return out
}

// Scale resamples the mask to the given size using nearest neighbour.
func (m *Mask) Scale(width, height int) *Mask {
	out := NewMask(width, height)
	if m.width == 0 || m.height == 0 {
		return out
	}
	for y := 0; y < height; y++ {
		sy := y * m.height / height
		for x := 0; x < width; x++ {
			if m.Get(x*m.width/width, sy) {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// Overlap reports whether any opaque pixel of m coincides with an opaque
// pixel of other when other's top-left corner sits at (dx, dy) in m's
// coordinate space.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	if other == nil {
		return false
	}

	x0 := max(0, dx)
	x1 := min(m.width, dx+other.width)
	y0 := max(0, dy)
	y1 := min(m.height, dy+other.height)
	if x0 >= x1 || y0 >= y1 {
		return false
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x += 64 {
			n := min(64, x1-x)
			if m.span(y, x, n)&other.span(y-dy, x-dx, n) != 0 {
				return true
			}
		}
	}
	return false
}

// span extracts n (<= 64) bits of row y starting at column x.
func (m *Mask) span(y, x, n int) uint64 {
	row := y * m.stride
	idx := x / 64
	off := uint(x % 64)

	v := m.bits[row+idx] >> off
	if off != 0 && idx+1 < m.stride {
		v |= m.bits[row+idx+1] << (64 - off)
	}
	if n < 64 {
		v &= (uint64(1) << uint(n)) - 1
	}
	return v
}
