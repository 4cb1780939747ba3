// internal/history/store.go
//
// SQLite-backed record of finished games. Live sessions never touch the
// database; they are memory-resident and die with the process, but the
// outcome of a completed game is worth keeping. Writes are best effort; the
// caller logs and moves on when they fail.

package history

import (
	"context"
	"database/sql"
	"time"
)

// Match is one finished multiplayer game.
type Match struct {
	Code        string `json:"code"`
	WinnerSeat  int    `json:"winner"`
	WinningWord string `json:"winningWord"`
	Guesses     int    `json:"guesses"`
	FinishedAt  string `json:"finishedAt"`
}

// SingleResult is one finished single-player game.
type SingleResult struct {
	GameID  string `json:"gameId"`
	Winner  string `json:"winner"` // "player" | "computer"
	Guesses int    `json:"guesses"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// RecordMatch inserts a finished multiplayer game.
func (s *Store) RecordMatch(ctx context.Context, m Match) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches(code, winner_seat, winning_word, guesses, finished_at)
		 VALUES(?,?,?,?,?)`,
		m.Code, m.WinnerSeat, m.WinningWord, m.Guesses, now())
	return err
}

// RecordSingle inserts a finished single-player game.
func (s *Store) RecordSingle(ctx context.Context, r SingleResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO single_results(game_id, winner, guesses, finished_at)
		 VALUES(?,?,?,?)`,
		r.GameID, r.Winner, r.Guesses, now())
	return err
}

// RecentMatches returns the latest finished multiplayer games, newest first.
func (s *Store) RecentMatches(ctx context.Context, limit int) ([]Match, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, winner_seat, winning_word, guesses, finished_at
		 FROM matches ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Match{}
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Code, &m.WinnerSeat, &m.WinningWord, &m.Guesses, &m.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
