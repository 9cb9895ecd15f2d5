package drake

import "math/rand"

// PipeTrack keeps the active pipes in spawn order, oldest first.
type PipeTrack struct {
	pipes  []*Pipe
	shape  *PipeShape
	rng    *rand.Rand
	firstX int
	spawnX int
}

// NewPipeTrack creates a track holding a single pipe at firstX.
func NewPipeTrack(shape *PipeShape, firstX, spawnX int, seed int64) *PipeTrack {
	t := &PipeTrack{
		pipes:  make([]*Pipe, 0, 4),
		shape:  shape,
		firstX: firstX,
		spawnX: spawnX,
	}
	t.Reset(seed)
	return t
}

// Reset clears the track and reseeds the gap generator.
func (t *PipeTrack) Reset(seed int64) {
	t.rng = rand.New(rand.NewSource(seed))
	t.pipes = t.pipes[:0]
	t.pipes = append(t.pipes, t.newPipe(t.firstX))
}

func (t *PipeTrack) newPipe(x int) *Pipe {
	return NewPipe(x, t.shape.RandomHeight(t.rng), t.shape)
}

// Advance runs one tick of the spawn/despawn policy against the lead x.
//
// Each pipe is checked before it moves: pipes already off-screen are
// dropped, and an unpassed pipe whose x is behind leadX is marked passed.
// At most one new pipe is appended per tick, and only when spawn is true.
// Returns the number of pipes passed this tick.
func (t *PipeTrack) Advance(leadX float64, spawn bool) int {
	passed := 0
	kept := t.pipes[:0]

	for _, p := range t.pipes {
		gone := p.OffScreen()
		if !p.Passed && float64(p.X) < leadX {
			p.Passed = true
			passed++
		}
		p.Advance()
		if !gone {
			kept = append(kept, p)
		}
	}
	clear(t.pipes[len(kept):])
	t.pipes = kept

	if passed > 0 && spawn {
		t.pipes = append(t.pipes, t.newPipe(t.spawnX))
	}
	return passed
}

// Len returns the number of active pipes.
func (t *PipeTrack) Len() int {
	return len(t.pipes)
}

// Front returns the oldest pipe, or nil when the track is empty.
func (t *PipeTrack) Front() *Pipe {
	if len(t.pipes) == 0 {
		return nil
	}
	return t.pipes[0]
}

// At returns the pipe at index i in spawn order.
func (t *PipeTrack) At(i int) (*Pipe, bool) {
	if i < 0 || i >= len(t.pipes) {
		return nil, false
	}
	return t.pipes[i], true
}

// Pipes returns the active pipes, oldest first. The slice must not be modified.
func (t *PipeTrack) Pipes() []*Pipe {
	return t.pipes
}

// TargetIndex returns the index of the pipe in front of a drake at leadX:
// the first pipe, or the second once the first one is fully behind.
func (t *PipeTrack) TargetIndex(leadX float64) int {
	if len(t.pipes) > 1 && leadX > float64(t.pipes[0].Right()) {
		return 1
	}
	return 0
}
