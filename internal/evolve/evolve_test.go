package evolve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/drake-arcade/internal/config"
	"github.com/vovakirdan/drake-arcade/internal/core"
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
)

func testConfig() config.DrakeConfig {
	cfg := config.DefaultDrakeConfig()
	cfg.Evolution.Population = 5
	cfg.Evolution.Generations = 3
	cfg.Evolution.MaxScore = 3
	cfg.Evolution.FitnessThreshold = 0
	return cfg
}

func testMembers(t *testing.T, n int) []*neuro.Member {
	t.Helper()
	settings, err := neuro.NewSettings(config.DefaultNEATConfig(), n)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	pop, err := neuro.NewPopulation(settings, 11)
	if err != nil {
		t.Fatalf("NewPopulation: %v", err)
	}
	return pop.Members
}

func testSession(t *testing.T, cfg config.DrakeConfig, n int) *Session {
	t.Helper()
	s, err := NewSession(testMembers(t, n), cfg, drake.MustSprites(cfg), 1)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestFlockRemoveKeepsOrder(t *testing.T) {
	f := &Flock{}
	for id := 1; id <= 4; id++ {
		f.Add(&Entry{ID: id})
	}

	snapshot := f.Entries()
	if !f.Remove(2) {
		t.Fatal("Remove(2) returned false")
	}
	if f.Remove(2) {
		t.Error("second Remove(2) returned true")
	}
	if len(snapshot) != 4 {
		t.Errorf("snapshot changed: got %d entries, expected 4", len(snapshot))
	}

	var ids []int
	for _, e := range f.Entries() {
		ids = append(ids, e.ID)
	}
	expected := []int{1, 3, 4}
	if len(ids) != len(expected) {
		t.Fatalf("ids: got %v, expected %v", ids, expected)
	}
	for i := range ids {
		if ids[i] != expected[i] {
			t.Errorf("ids: got %v, expected %v", ids, expected)
			break
		}
	}

	if _, ok := f.Get(2); ok {
		t.Error("Get(2) found a removed entry")
	}
	if e, ok := f.Get(3); !ok || e.ID != 3 {
		t.Error("Get(3) failed")
	}
	if f.Lead().ID != 1 {
		t.Errorf("Lead: got %d, expected 1", f.Lead().ID)
	}

	f.Remove(1)
	f.Remove(3)
	f.Remove(4)
	if f.Lead() != nil {
		t.Error("Lead of empty flock should be nil")
	}
}

func TestSessionCrashRemovesWholeEntry(t *testing.T) {
	cfg := testConfig()
	s := testSession(t, cfg, 3)

	// Bring the first pipe to the drakes with its gap at 300..500
	p := s.World.Pipes.Front()
	p.X = int(cfg.Drake.StartX)
	p.Height = 300
	p.Top = p.Height - cfg.Pipes.Height
	p.Bottom = p.Height + p.Shape().Gap

	drakes := map[int]*drake.Drake{}
	brains := map[int]*neuro.Brain{}
	for _, e := range s.Flock.Entries() {
		drakes[e.ID] = e.Drake
		brains[e.ID] = e.Brain
	}
	crashed, _ := s.Flock.Get(2)
	first, _ := s.Flock.Get(1)
	third, _ := s.Flock.Get(3)
	first.Drake.Y = 340
	crashed.Drake.Y = 150 // inside the top segment
	third.Drake.Y = 360

	if !s.Step() {
		t.Fatal("session ended with two drakes still flying")
	}

	if s.Flock.Len() != 2 {
		t.Fatalf("flock size: got %d, expected 2", s.Flock.Len())
	}
	if _, ok := s.Flock.Get(2); ok {
		t.Error("crashed drake still in flock")
	}
	for _, e := range s.Flock.Entries() {
		if e.Member.ID != e.ID {
			t.Errorf("entry %d carries member %d", e.ID, e.Member.ID)
		}
		if e.Brain != brains[e.ID] {
			t.Errorf("entry %d carries another entry's network", e.ID)
		}
		if e.Brain.Genome != e.Member.Genotype {
			t.Errorf("entry %d network not built from its genome", e.ID)
		}
		if e.Drake != drakes[e.ID] {
			t.Errorf("entry %d carries another entry's drake", e.ID)
		}
	}

	ev := cfg.Evolution
	if got, expected := crashed.Member.Fitness, ev.TickReward-ev.CrashPenalty; got != expected {
		t.Errorf("crashed fitness: got %f, expected %f", got, expected)
	}
	if got := first.Member.Fitness; got != ev.TickReward {
		t.Errorf("survivor fitness: got %f, expected %f", got, ev.TickReward)
	}
}

func TestSessionOutOfBoundsNoPenalty(t *testing.T) {
	cfg := testConfig()
	s := testSession(t, cfg, 2)

	e, _ := s.Flock.Get(1)
	e.Drake.Y = cfg.GroundY() // already below the ground line

	s.Step()
	if _, ok := s.Flock.Get(1); ok {
		t.Fatal("drake below the ground still flying")
	}
	if e.Member.Fitness != cfg.Evolution.TickReward {
		t.Errorf("fitness: got %f, expected %f", e.Member.Fitness, cfg.Evolution.TickReward)
	}
}

func TestSessionEndsWhenFlockIsEmpty(t *testing.T) {
	cfg := testConfig()
	s := testSession(t, cfg, 4)

	ticks := 0
	for s.Step() {
		ticks++
		if ticks > 100000 {
			t.Fatal("session did not end")
		}
	}
	if !s.Ended() {
		t.Error("Ended should be true")
	}
	if s.Flock.Len() != 0 && s.World.Score < cfg.Evolution.MaxScore {
		t.Errorf("session ended with %d drakes and score %d", s.Flock.Len(), s.World.Score)
	}
	if s.Step() {
		t.Error("Step after end should return false")
	}
	if s.Ticks() != ticks+1 {
		t.Errorf("Ticks: got %d, expected %d", s.Ticks(), ticks+1)
	}
}

func TestSessionPassBonus(t *testing.T) {
	cfg := testConfig()
	s := testSession(t, cfg, 2)

	// Put the first pipe just behind the drakes so it is passed this tick
	p := s.World.Pipes.Front()
	p.X = int(cfg.Drake.StartX) - 1
	p.Height = 300
	p.Top = p.Height - cfg.Pipes.Height
	p.Bottom = p.Height + p.Shape().Gap
	for _, e := range s.Flock.Entries() {
		e.Drake.Y = 350
	}

	s.Step()
	if s.World.Score != 1 {
		t.Fatalf("score: got %d, expected 1", s.World.Score)
	}
	ev := cfg.Evolution
	for _, e := range s.Flock.Entries() {
		if expected := ev.TickReward + ev.PassBonus; e.Member.Fitness != expected {
			t.Errorf("entry %d fitness: got %f, expected %f", e.ID, e.Member.Fitness, expected)
		}
	}
}

func TestAutopilotThreshold(t *testing.T) {
	members := testMembers(t, 1)
	g := members[0].Genotype
	for _, gene := range g.Genes {
		gene.Link.ConnectionWeight = 0
	}
	g.Genes[neuro.Inputs].Link.ConnectionWeight = 5 // bias only

	a, err := NewAutopilot(neuro.Champion{Genome: g}, 0.5)
	if err != nil {
		t.Fatalf("NewAutopilot: %v", err)
	}
	flap, err := a.Decide(drake.Sensors{Height: 300, GapTop: 10, GapBottom: 190})
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if !flap {
		t.Error("strong positive output should flap")
	}

	g.Genes[neuro.Inputs].Link.ConnectionWeight = -5
	a, _ = NewAutopilot(neuro.Champion{Genome: g}, 0.5)
	if flap, _ := a.Decide(drake.Sensors{}); flap {
		t.Error("negative output should not flap")
	}

	if _, err := NewAutopilot(neuro.Champion{}, 0.5); err == nil {
		t.Error("expected error for a champion without genome")
	}
}

func newTestTrainer(t *testing.T, cfg config.DrakeConfig) *Trainer {
	t.Helper()
	settings, err := neuro.NewSettings(config.DefaultNEATConfig(), cfg.Evolution.Population)
	if err != nil {
		t.Fatalf("NewSettings: %v", err)
	}
	tr, err := NewTrainer(cfg, settings, 3)
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}
	return tr
}

func TestTrainerRun(t *testing.T) {
	cfg := testConfig()
	tr := newTestTrainer(t, cfg)

	var reports []GenerationReport
	tr.Observe(ObserverFunc(func(r GenerationReport) error {
		reports = append(reports, r)
		return nil
	}))

	res, err := tr.Run(context.Background(), 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Generations != 3 || len(reports) != 3 {
		t.Fatalf("generations: got %d (%d reports), expected 3", res.Generations, len(reports))
	}
	for i, r := range reports {
		if r.Stats.Generation != i+1 {
			t.Errorf("report %d generation: got %d, expected %d", i, r.Stats.Generation, i+1)
		}
		if r.Stats.Population != cfg.Evolution.Population {
			t.Errorf("report %d population: got %d, expected %d", i, r.Stats.Population, cfg.Evolution.Population)
		}
		if r.Champion.Fitness != r.Stats.Best {
			t.Errorf("report %d champion fitness %f, best %f", i, r.Champion.Fitness, r.Stats.Best)
		}
		if r.Champion.Fitness > res.Champion.Fitness {
			t.Errorf("run champion %f worse than generation %d best %f", res.Champion.Fitness, i+1, r.Champion.Fitness)
		}
	}
	if res.Champion.Genome == nil {
		t.Error("run has no champion")
	}
	if tr.Population().Generation() != 4 {
		t.Errorf("population generation: got %d, expected 4", tr.Population().Generation())
	}
}

func TestTrainerStopsAtThreshold(t *testing.T) {
	cfg := testConfig()
	// Every drake survives its first tick
	cfg.Evolution.FitnessThreshold = cfg.Evolution.TickReward / 2
	tr := newTestTrainer(t, cfg)

	res, err := tr.Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Solved || !tr.Solved() {
		t.Error("expected run to be solved")
	}
	if res.Generations != 1 {
		t.Errorf("generations: got %d, expected 1", res.Generations)
	}
	if tr.Population().Generation() != 1 {
		t.Errorf("solved population evolved to generation %d", tr.Population().Generation())
	}
}

func TestTrainerCancelled(t *testing.T) {
	tr := newTestTrainer(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := tr.Run(ctx, 5)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, expected context.Canceled", err)
	}
	if res.Generations != 0 {
		t.Errorf("generations: got %d, expected 0", res.Generations)
	}
}

func TestTrainerObserverError(t *testing.T) {
	tr := newTestTrainer(t, testConfig())
	boom := errors.New("disk full")
	tr.Observe(ObserverFunc(func(GenerationReport) error { return boom }))

	res, err := tr.Run(context.Background(), 3)
	if !errors.Is(err, boom) {
		t.Errorf("error: got %v, expected %v", err, boom)
	}
	if res.Generations != 1 {
		t.Errorf("generations: got %d, expected 1", res.Generations)
	}
}

func TestGameRunsAllGenerations(t *testing.T) {
	cfg := testConfig()
	cfg.Evolution.Generations = 2
	g := NewGameWithConfig(cfg, config.DefaultNEATConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 5})

	state := g.State()
	if state.Generation != 1 || state.Alive != cfg.Evolution.Population {
		t.Fatalf("initial state: got %+v", state)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Gen 1") {
		t.Error("HUD does not show the generation")
	}

	for i := 0; !g.State().GameOver; i++ {
		if i > 200000 {
			t.Fatal("evolution game did not finish")
		}
		g.Step(core.InputFrame{})
	}

	if g.Trainer().Champion().Genome == nil {
		t.Error("finished game has no champion")
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "Evolution complete") {
		t.Error("missing completion banner")
	}

	// Finished games ignore input until reset
	before := g.State()
	g.Step(core.InputFrame{})
	if g.State() != before {
		t.Error("state changed after finish")
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 5})
	if g.State().GameOver || g.State().Generation != 1 {
		t.Errorf("state after reset: got %+v", g.State())
	}
}

func TestGamePause(t *testing.T) {
	g := NewGameWithConfig(testConfig(), config.DefaultNEATConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	ticks := g.Session().Ticks()
	g.Step(core.InputFrame{})
	if g.Session().Ticks() != ticks {
		t.Error("paused game advanced")
	}
	if !g.State().Paused {
		t.Error("State should report paused")
	}
}

func TestGameBadConfig(t *testing.T) {
	cfg := testConfig()
	neatCfg := config.DefaultNEATConfig()
	neatCfg.Network.OutputActivation = "bogus"

	g := NewGameWithConfig(cfg, neatCfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if !g.State().GameOver {
		t.Error("game with invalid NEAT config should be over")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Evolution failed") {
		t.Error("missing failure banner")
	}
}

func TestGameObservers(t *testing.T) {
	var gens []int
	SetObservers(ObserverFunc(func(r GenerationReport) error {
		gens = append(gens, r.Stats.Generation)
		return nil
	}))
	defer SetObservers()

	cfg := testConfig()
	cfg.Evolution.Generations = 2
	g := NewGameWithConfig(cfg, config.DefaultNEATConfig())
	g.Reset(core.RuntimeConfig{Seed: 3})

	for i := 0; !g.State().GameOver; i++ {
		if i > 200000 {
			t.Fatal("evolution game did not finish")
		}
		g.Step(core.InputFrame{})
	}

	if len(gens) != 2 || gens[0] != 1 || gens[1] != 2 {
		t.Errorf("observed generations: got %v, expected [1 2]", gens)
	}
}
