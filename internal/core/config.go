package core

// RuntimeConfig is what the platform hands a game when it is created.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // simulation ticks per second
	Seed     int64 // track seed; the platform replaces 0 with a random one
}

// GameState is the platform-facing status of a game after a tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool

	// Set by population games only.
	Generation int
	Alive      int
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
