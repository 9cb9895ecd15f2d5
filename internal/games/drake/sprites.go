package drake

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
)

// FrameCount is the number of drake animation frames.
const FrameCount = 3

//go:embed assets/drake.txt
var drakeFrames string

// Sprites holds the collision masks shared by every entity of a world.
type Sprites struct {
	Frames     [FrameCount]*core.Mask
	PipeTop    *core.Mask
	PipeBottom *core.Mask
}

// NewSprites builds the masks for the configured sprite sizes.
func NewSprites(cfg config.DrakeConfig) (*Sprites, error) {
	templates, err := parseFrames(drakeFrames)
	if err != nil {
		return nil, err
	}

	s := &Sprites{}
	for i, rows := range templates {
		s.Frames[i] = core.MaskFromRows(rows).Scale(cfg.Drake.Width, cfg.Drake.Height)
	}
	s.PipeBottom = pipeMask(cfg.Pipes)
	s.PipeTop = s.PipeBottom.FlipVertical()
	return s, nil
}

// MustSprites is like NewSprites but panics on a malformed embedded template.
func MustSprites(cfg config.DrakeConfig) *Sprites {
	s, err := NewSprites(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// parseFrames splits the template file into frames. Lines starting with
// '#' followed by a space are comments.
func parseFrames(src string) ([][]string, error) {
	var frames [][]string
	var cur []string

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "# "):
			continue
		case line == "---":
			frames = append(frames, cur)
			cur = nil
		case line == "":
			continue
		default:
			cur = append(cur, line)
		}
	}
	if len(cur) > 0 {
		frames = append(frames, cur)
	}

	if len(frames) != FrameCount {
		return nil, fmt.Errorf("drake: expected %d sprite frames, found %d", FrameCount, len(frames))
	}
	return frames, nil
}

// pipeMask draws the bottom pipe segment: a full-width cap on top of a
// slightly narrower shaft.
func pipeMask(cfg config.PipeConfig) *core.Mask {
	m := core.NewMask(cfg.Width, cfg.Height)
	inset := cfg.Width / 26
	for y := 0; y < cfg.Height; y++ {
		x0, x1 := inset, cfg.Width-inset
		if y < cfg.CapHeight {
			x0, x1 = 0, cfg.Width
		}
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}
