package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/teensteam/namecup/internal/bracket"
)

const (
	getStateQuery = `
		SELECT current_round, current_match_index, matches, winners, scores
		FROM tournament_state
		WHERE id = 1
	`
	saveStateQuery = `
		INSERT INTO tournament_state (id, current_round, current_match_index, matches, winners, scores, updated_at)
		VALUES (1, :current_round, :current_match_index, :matches, :winners, :scores, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			current_round = excluded.current_round,
			current_match_index = excluded.current_match_index,
			matches = excluded.matches,
			winners = excluded.winners,
			scores = excluded.scores,
			updated_at = excluded.updated_at
	`
	clearStateQuery = "DELETE FROM tournament_state"
)

// stateRow keeps the round position in columns and the collections as JSON.
type stateRow struct {
	CurrentRound      string `db:"current_round"`
	CurrentMatchIndex int    `db:"current_match_index"`
	Matches           string `db:"matches"`
	Winners           string `db:"winners"`
	Scores            string `db:"scores"`
}

// LoadTournamentState returns the running tournament. found is false when no
// tournament has been saved since the last clear.
func (s *Store) LoadTournamentState(ctx context.Context) (state bracket.TournamentState, found bool, err error) {
	var row stateRow
	if err := s.db.GetContext(ctx, &row, getStateQuery); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bracket.TournamentState{}, false, nil
		}
		return bracket.TournamentState{}, false, fmt.Errorf("failed to get tournament state: %w", err)
	}

	state = bracket.TournamentState{
		CurrentRound:      bracket.Round(row.CurrentRound),
		CurrentMatchIndex: row.CurrentMatchIndex,
	}
	if err := json.Unmarshal([]byte(row.Matches), &state.Matches); err != nil {
		return bracket.TournamentState{}, false, fmt.Errorf("failed to decode matches: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Winners), &state.Winners); err != nil {
		return bracket.TournamentState{}, false, fmt.Errorf("failed to decode winners: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Scores), &state.Scores); err != nil {
		return bracket.TournamentState{}, false, fmt.Errorf("failed to decode scores: %w", err)
	}

	return state, true, nil
}

func (s *Store) SaveTournamentState(ctx context.Context, state bracket.TournamentState) error {
	matches, err := json.Marshal(state.Matches)
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}
	winners, err := json.Marshal(state.Winners)
	if err != nil {
		return fmt.Errorf("failed to encode winners: %w", err)
	}
	scores, err := json.Marshal(state.Scores)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	_, err = s.db.NamedExecContext(ctx, saveStateQuery, stateRow{
		CurrentRound:      string(state.CurrentRound),
		CurrentMatchIndex: state.CurrentMatchIndex,
		Matches:           string(matches),
		Winners:           string(winners),
		Scores:            string(scores),
	})
	if err != nil {
		return fmt.Errorf("failed to save tournament state: %w", err)
	}
	return nil
}

func (s *Store) ClearTournamentState(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, clearStateQuery); err != nil {
		return fmt.Errorf("failed to clear tournament state: %w", err)
	}
	return nil
}
