package storage

import "testing"

func saveScores(t *testing.T, store *Store, gameID string, scores ...int) {
	t.Helper()
	for _, s := range scores {
		if _, err := store.SaveScore(gameID, s); err != nil {
			t.Fatalf("SaveScore(%q, %d) failed: %v", gameID, s, err)
		}
	}
}

func TestTopScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "drake", 100, 50, 200, 400, 300)
	saveScores(t, store, "drake_demo", 500)

	tests := []struct {
		name     string
		limit    int
		expected []int
	}{
		{"limited", 3, []int{400, 300, 200}},
		{"default limit", 0, []int{400, 300, 200, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := store.TopScores("drake", tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != len(tt.expected) {
				t.Fatalf("got %d scores, expected %d", len(scores), len(tt.expected))
			}
			for i, s := range scores {
				if s.Score != tt.expected[i] || s.GameID != "drake" {
					t.Errorf("scores[%d] = %+v, expected %d for drake", i, s, tt.expected[i])
				}
				if s.CreatedAt.IsZero() {
					t.Errorf("scores[%d] has no timestamp", i)
				}
			}
		})
	}
}

func TestAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := range 20 {
		saveScores(t, store, "drake", i*10)
	}

	scores, err := store.AllScores("drake")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 || scores[0].Score != 190 {
		t.Errorf("got %d scores starting at %d, expected 20 starting at 190", len(scores), scores[0].Score)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	if high, err := store.HighScore("drake"); err != nil || high != 0 {
		t.Errorf("empty game: got %d, %v, expected 0", high, err)
	}

	saveScores(t, store, "drake", 100, 300, 200)
	if high, err := store.HighScore("drake"); err != nil || high != 300 {
		t.Errorf("got %d, %v, expected 300", high, err)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "drake", 100, 200)
	saveScores(t, store, "drake_demo", 300)

	n, err := store.ClearScores("drake")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared %d rows, expected 2", n)
	}

	if left, _ := store.TopScores("drake", 10); len(left) != 0 {
		t.Errorf("expected no drake scores after clear, got %d", len(left))
	}
	if demo, _ := store.TopScores("drake_demo", 10); len(demo) != 1 {
		t.Error("clearing drake should not touch drake_demo")
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "drake", 4, 8)
	saveScores(t, store, "drake_ai", 50)

	stats, err := store.GetGameStats("drake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 8 || stats.TotalScore != 12 || stats.AvgScore != 6 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("drake_demo")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected stats for 2 games, got %d", len(all))
	}
	if all["drake_ai"] == nil || all["drake_ai"].HighScore != 50 {
		t.Errorf("unexpected drake_ai stats: %+v", all["drake_ai"])
	}
}
