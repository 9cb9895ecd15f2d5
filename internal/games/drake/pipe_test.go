package drake

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/drake-arcade/internal/config"
)

func testShape(t *testing.T, cfg config.DrakeConfig) (*PipeShape, *Sprites) {
	t.Helper()
	sprites := MustSprites(cfg)
	return NewPipeShape(cfg.Pipes, sprites), sprites
}

func TestPipeExample(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)

	p := NewPipe(800, 200, shape)
	if p.Top != 200-640 {
		t.Errorf("Top = %d, expected %d", p.Top, 200-640)
	}
	if p.Bottom != 400 {
		t.Errorf("Bottom = %d, expected 400", p.Bottom)
	}
}

func TestPipeGeometryInvariant(t *testing.T) {
	for _, gap := range []int{config.EasyGap, config.NormalGap, config.HardGap} {
		cfg := config.DefaultDrakeConfig()
		cfg.Pipes.Gap = gap
		shape, _ := testShape(t, cfg)
		rng := rand.New(rand.NewSource(int64(gap)))

		for i := 0; i < 200; i++ {
			h := shape.RandomHeight(rng)
			if h < 50 || h >= 450 {
				t.Fatalf("RandomHeight() = %d, expected [50, 450)", h)
			}
			p := NewPipe(600, h, shape)
			if p.Bottom != p.Top+shape.Height+gap {
				t.Fatalf("Bottom %d != Top %d + %d + %d", p.Bottom, p.Top, shape.Height, gap)
			}
		}
	}
}

func TestPipeCollide(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, sprites := testShape(t, cfg)
	p := NewPipe(150, 300, shape) // gap spans y 300..500

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"centred in gap", 150, 350, false},
		{"far above both segments", 150, -2000, false},
		{"far to the right", 600, 250, false},
		{"inside bottom segment", 150, 520, true},
		{"inside top segment", 150, 150, true},
		{"nose into bottom cap", 60, 440, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrakeAt(tt.x, tt.y, cfg.Drake, sprites)
			if got := p.Collide(d); got != tt.expected {
				t.Errorf("Collide() at (%v, %v) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestPipeCollideSymmetric(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, sprites := testShape(t, cfg)
	p := NewPipe(200, 250, shape)

	for y := -200.0; y <= 800; y += 37 {
		for x := 0.0; x <= 400; x += 29 {
			d := NewDrakeAt(x, y, cfg.Drake, sprites)
			mask := d.Mask()
			dx := p.X - int(x)
			dy := int(y)

			forward := mask.Overlap(shape.bottom, dx, p.Bottom-dy) || mask.Overlap(shape.top, dx, p.Top-dy)
			swapped := shape.top.Overlap(mask, -dx, dy-p.Top) || shape.bottom.Overlap(mask, -dx, dy-p.Bottom)

			if forward != swapped {
				t.Fatalf("at (%v, %v): drake-first %v, pipe-first %v", x, y, forward, swapped)
			}
			if got := p.Collide(d); got != forward {
				t.Fatalf("at (%v, %v): Collide() = %v, expected %v", x, y, got, forward)
			}
		}
	}
}

func TestPipeOffScreen(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)

	p := NewPipe(-104, 200, shape)
	if p.OffScreen() {
		t.Error("pipe with right edge at 0 should still be on screen")
	}
	p.Advance()
	if !p.OffScreen() {
		t.Error("pipe with right edge below 0 should be off screen")
	}
}

func TestPipeTrackSpawnEdgeTriggered(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)
	track := NewPipeTrack(shape, 800, 600, 1)

	// The first pipe is checked at x = 800, 795, ... and passes the lead
	// at 150 when it is seen at 145, on tick 132.
	for tick := 1; tick <= 131; tick++ {
		if passed := track.Advance(150, true); passed != 0 {
			t.Fatalf("tick %d: passed = %d, expected 0", tick, passed)
		}
	}
	if track.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", track.Len())
	}

	if passed := track.Advance(150, true); passed != 1 {
		t.Fatalf("passed = %d, expected 1", passed)
	}
	if track.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", track.Len())
	}
	second, _ := track.At(1)
	if second.X != 600 {
		t.Errorf("spawned pipe X = %d, expected 600", second.X)
	}

	// No re-trigger while the first pipe keeps moving behind the lead.
	for i := 0; i < 20; i++ {
		if passed := track.Advance(150, true); passed != 0 {
			t.Fatalf("re-triggered after %d ticks", i+1)
		}
	}
	if track.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", track.Len())
	}
}

func TestPipeTrackFIFO(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)
	track := NewPipeTrack(shape, 800, 600, 3)

	spawned, passedTotal := 1, 0
	for tick := 0; tick < 3000; tick++ {
		before := track.Len()
		passed := track.Advance(150, true)
		passedTotal += passed
		if passed > 0 {
			spawned++
		}
		if passed > 1 {
			t.Fatalf("tick %d: %d pipes passed at once", tick, passed)
		}

		pipes := track.Pipes()
		for i := 1; i < len(pipes); i++ {
			if pipes[i].X <= pipes[i-1].X {
				t.Fatalf("tick %d: pipes out of spawn order", tick)
			}
		}
		for _, p := range pipes {
			if p.X+shape.Width < -shape.Velocity {
				t.Fatalf("tick %d: stale off-screen pipe at %d", tick, p.X)
			}
		}
		if track.Len() > before+1 {
			t.Fatalf("tick %d: more than one pipe spawned", tick)
		}
	}

	if passedTotal == 0 {
		t.Fatal("no pipes passed")
	}
	if spawned != passedTotal+1 {
		t.Errorf("spawned %d pipes for %d passes, expected one per pass", spawned, passedTotal)
	}
}

func TestPipeTrackNoSpawn(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)
	track := NewPipeTrack(shape, 200, 600, 1)

	passed := 0
	for i := 0; i < 200; i++ {
		passed += track.Advance(150, false)
	}
	if passed != 1 {
		t.Errorf("passed = %d, expected 1", passed)
	}
	if track.Len() != 0 {
		t.Errorf("Len() = %d, expected 0 once the only pipe left", track.Len())
	}
	if track.Front() != nil {
		t.Error("Front() should be nil on an empty track")
	}
	if idx := track.TargetIndex(150); idx != 0 {
		t.Errorf("TargetIndex() = %d, expected 0", idx)
	}
}

func TestPipeTrackTargetIndex(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)
	track := NewPipeTrack(shape, 100, 600, 1)

	if idx := track.TargetIndex(150); idx != 0 {
		t.Errorf("single pipe: TargetIndex() = %d, expected 0", idx)
	}

	// Pass the first pipe to spawn a second one.
	for track.Len() < 2 {
		track.Advance(150, true)
	}
	front := track.Front()
	for float64(front.Right()) >= 150 {
		track.Advance(150, true)
	}
	if idx := track.TargetIndex(150); idx != 1 {
		t.Errorf("TargetIndex() = %d, expected 1 once the front pipe is behind", idx)
	}
	if _, ok := track.At(5); ok {
		t.Error("At(5) should report a missing pipe")
	}
}

func TestPipeTrackDeterministic(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	shape, _ := testShape(t, cfg)
	a := NewPipeTrack(shape, 800, 600, 42)
	b := NewPipeTrack(shape, 800, 600, 42)

	for i := 0; i < 1000; i++ {
		a.Advance(150, true)
		b.Advance(150, true)
	}
	if a.Len() != b.Len() {
		t.Fatalf("Len() differs: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Pipes() {
		pa, pb := a.Pipes()[i], b.Pipes()[i]
		if pa.X != pb.X || pa.Height != pb.Height {
			t.Errorf("pipe %d differs: %+v vs %+v", i, *pa, *pb)
		}
	}
}
