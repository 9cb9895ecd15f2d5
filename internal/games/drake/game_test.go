package drake

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     seed,
	}
}

// hoverPilot flaps once the drake's top edge sinks 88px below the gap
// top. A flap lifts the drake 96px, so it stays clear of both segments.
var hoverPilot = PilotFunc(func(s Sensors) (bool, error) {
	return s.GapBottom < s.GapTop+24, nil
})

// hoverConfig keeps every gap well below the sky band.
func hoverConfig() config.DrakeConfig {
	cfg := config.DefaultDrakeConfig()
	cfg.Pipes.MinHeight = 150
	return cfg
}

func TestGameFallsToGround(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	g.Reset(testRuntime(1))

	ticks := 0
	for !g.State().GameOver && ticks < 200 {
		g.Step(core.NewInputFrame())
		ticks++
	}

	if !g.State().GameOver {
		t.Fatal("drake without input should crash into the ground")
	}
	if g.Drake().Y+100 <= 796 {
		t.Errorf("drake ended at y=%v, expected below the ground line", g.Drake().Y)
	}
	if g.State().Score != 0 {
		t.Errorf("Score = %d, expected 0", g.State().Score)
	}
}

func TestGameEndFreezesSimulation(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	g.Reset(testRuntime(1))

	for !g.State().GameOver {
		g.Step(core.NewInputFrame())
	}

	y := g.Drake().Y
	pipeX := g.World().Pipes.Front().X
	groundX := g.World().Ground.X1

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	for i := 0; i < 10; i++ {
		g.Step(jump)
	}

	if g.Drake().Y != y || g.World().Pipes.Front().X != pipeX || g.World().Ground.X1 != groundX {
		t.Error("simulation should be frozen after the game ends")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), EndTitle) {
		t.Errorf("end banner %q not rendered", EndTitle)
	}
}

func TestGameCeiling(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	g.Reset(testRuntime(1))

	jump := core.NewInputFrame()
	jump.Set(core.ActionJump)
	for i := 0; i < 100 && !g.State().GameOver; i++ {
		g.Step(jump)
	}

	if !g.State().GameOver {
		t.Fatal("drake flapping every tick should leave through the sky")
	}
	if g.Drake().Y-100 >= 0 {
		t.Errorf("drake ended at y=%v, expected above the sky line", g.Drake().Y)
	}
}

func TestGamePilotScores(t *testing.T) {
	g := NewWithConfig(hoverConfig())
	g.SetPilot(hoverPilot)
	g.Reset(testRuntime(5))

	for i := 0; i < 1500 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	if g.State().GameOver {
		t.Errorf("hovering pilot crashed with score %d", g.State().Score)
	}
	if g.State().Score < 10 {
		t.Errorf("Score = %d, expected at least 10 pipes", g.State().Score)
	}
}

func TestGamePilotError(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	calls := 0
	g.SetPilot(PilotFunc(func(Sensors) (bool, error) {
		calls++
		return false, errors.New("network exploded")
	}))
	g.Reset(testRuntime(1))

	g.Step(core.NewInputFrame())
	g.Step(core.NewInputFrame())

	if calls != 1 {
		t.Errorf("pilot called %d times, expected 1 before being dropped", calls)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "network exploded") {
		t.Error("pilot error should be shown on the HUD")
	}
	g.Reset(testRuntime(1))
	g.Step(core.NewInputFrame())
	if calls != 2 {
		t.Errorf("pilot called %d times after restart, expected 2", calls)
	}
}

func TestGamePause(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	g.Reset(testRuntime(1))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}

	y := g.Drake().Y
	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Drake().Y != y {
		t.Error("drake moved while paused")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("expected unpaused state")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (int, float64, int) {
		g := NewWithConfig(hoverConfig())
		g.SetPilot(hoverPilot)
		g.Reset(testRuntime(99))
		ticks := 0
		for ; ticks < 800 && !g.State().GameOver; ticks++ {
			g.Step(core.NewInputFrame())
		}
		return g.State().Score, g.Drake().Y, ticks
	}

	s1, y1, t1 := run()
	s2, y2, t2 := run()
	if s1 != s2 || y1 != y2 || t1 != t2 {
		t.Errorf("runs differ: (%d, %v, %d) vs (%d, %v, %d)", s1, y1, t1, s2, y2, t2)
	}
}

func TestGameReset(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	g.Reset(testRuntime(1))
	for !g.State().GameOver {
		g.Step(core.NewInputFrame())
	}

	g.Reset(testRuntime(2))
	st := g.State()
	if st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("state after reset = %+v, expected fresh game", st)
	}
	if g.Drake().Y != 350 || g.Drake().X != 150 {
		t.Errorf("drake at (%v, %v), expected (150, 350)", g.Drake().X, g.Drake().Y)
	}
	if g.World().Pipes.Len() != 1 || g.World().Pipes.Front().X != 800 {
		t.Error("expected a single pipe at x=800 after reset")
	}
}

func TestGameRender(t *testing.T) {
	g := NewWithConfig(config.DefaultDrakeConfig())
	g.Reset(testRuntime(1))

	// Bring the first pipe on screen.
	for i := 0; i < 80; i++ {
		g.World().Advance(g.Drake().X, true)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.ContainsRune(out, PipeCapTop) {
		t.Error("pipe cap not rendered")
	}
	if cell := screen.GetCell(core.Project(450, 500, 80), 0); cell.Color != core.ColorPipe {
		t.Errorf("top segment cell color = %v, expected %v", cell.Color, core.ColorPipe)
	}
	if !strings.ContainsRune(screen.Row(23), GroundChar) {
		t.Error("ground not rendered on the last row")
	}
	cell := screen.GetCell(core.Project(200, 500, 80), core.Project(400, 800, 24))
	if cell.Color != core.ColorDrake {
		t.Errorf("drake body cell color = %v, expected %v", cell.Color, core.ColorDrake)
	}
}

func TestRendererGuideSkipsMissingPipe(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	sprites := MustSprites(cfg)
	w := NewWorld(cfg, sprites, 300, 1)
	d := NewDrake(cfg.Drake, sprites)

	screen := core.NewScreen(80, 24)
	r := NewRenderer(screen, w)
	r.Guide(d, 3)
	if strings.ContainsRune(screen.String(), GuideChar) {
		t.Error("guide to a missing pipe should be skipped")
	}

	r.Guide(d, 0)
	if !strings.ContainsRune(screen.String(), GuideChar) {
		t.Error("guide to the first pipe should be drawn")
	}
}

func TestWorldOutOfBounds(t *testing.T) {
	cfg := config.DefaultDrakeConfig()
	sprites := MustSprites(cfg)
	w := NewWorld(cfg, sprites, 800, 1)

	tests := []struct {
		y        float64
		expected bool
	}{
		{350, false},
		{696, false},
		{697, true},
		{100, false},
		{99, true},
	}
	for _, tt := range tests {
		d := NewDrakeAt(150, tt.y, cfg.Drake, sprites)
		if got := w.OutOfBounds(d); got != tt.expected {
			t.Errorf("OutOfBounds(y=%v) = %v, expected %v", tt.y, got, tt.expected)
		}
	}
}

func TestDemoNeverEnds(t *testing.T) {
	d := NewDemoWithConfig(config.DefaultDrakeConfig())
	d.Reset(testRuntime(3))

	for i := 0; i < 2000; i++ {
		res := d.Step(core.NewInputFrame())
		if res.State.GameOver {
			t.Fatalf("demo ended at tick %d", i)
		}
	}
	if d.State().Score == 0 {
		t.Error("pipes should scroll past the phantom drake")
	}
	if d.World().Pipes.Len() == 0 {
		t.Error("demo track ran dry")
	}

	screen := core.NewScreen(80, 24)
	d.Render(screen)
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.GetCell(x, y).Color == core.ColorDrake {
				t.Fatalf("demo drew a drake cell at (%d, %d)", x, y)
			}
		}
	}
}
