package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// ScoreEntry is one finished round.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	CreatedAt time.Time
}

// GameStats aggregates every recorded round of a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// SaveScore records a finished round and returns its row ID.
func (s *Store) SaveScore(gameID string, score int) (int64, error) {
	res, err := s.db.Exec("INSERT INTO scores (game_id, score) VALUES (?, ?)", gameID, score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return res.LastInsertId()
}

// TopScores returns the best limit scores of a game, highest first.
// A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(`SELECT id, game_id, score, created_at FROM scores
		WHERE game_id = ? ORDER BY score DESC, id LIMIT ?`, gameID, limit)
}

// AllScores returns every score of a game, highest first.
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(`SELECT id, game_id, score, created_at FROM scores
		WHERE game_id = ? ORDER BY score DESC, id`, gameID)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// HighScore returns the best score of a game, or 0 when none is recorded.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every score of a game and reports how many went.
func (s *Store) ClearScores(gameID string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return res.RowsAffected()
}

const statsColumns = `COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(score), 0), MAX(created_at)`

func scanStats(row rowScanner, st *GameStats) error {
	var last any
	if err := row.Scan(&st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &last); err != nil {
		return err
	}
	st.LastPlayed = parseTime(last)
	return nil
}

// GetGameStats aggregates the scores of one game. A game without scores
// yields zero stats.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}
	row := s.db.QueryRow("SELECT "+statsColumns+" FROM scores WHERE game_id = ?", gameID)
	if err := scanStats(row, st); err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return st, nil
}

// GetAllGamesStats aggregates the scores of every game that has any.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query("SELECT game_id, " + statsColumns + " FROM scores GROUP BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		st := &GameStats{}
		var last any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		st.LastPlayed = parseTime(last)
		all[st.GameID] = st
	}
	return all, rows.Err()
}
