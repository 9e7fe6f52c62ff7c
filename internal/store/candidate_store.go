package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/seed"
)

const (
	listCandidatesQuery = `
		SELECT id, name, author, image_url, reason
		FROM candidates
		ORDER BY position ASC
	`
	deleteCandidatesQuery = "DELETE FROM candidates"
	insertCandidatesQuery = `
		INSERT INTO candidates (id, name, author, image_url, reason, position) VALUES
		(:id, :name, :author, :image_url, :reason, :position)
	`
)

type candidateRow struct {
	bracket.Candidate
	Position int `db:"position"`
}

// LoadCandidates returns the stored list. When nothing has been stored yet the
// sample set is saved and returned instead.
func (s *Store) LoadCandidates(ctx context.Context) ([]bracket.Candidate, error) {
	var candidates []bracket.Candidate
	if err := s.db.SelectContext(ctx, &candidates, listCandidatesQuery); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	if len(candidates) > 0 {
		return candidates, nil
	}

	candidates = seed.Candidates()
	if err := s.SaveCandidates(ctx, candidates); err != nil {
		return nil, fmt.Errorf("failed to store sample candidates: %w", err)
	}
	return candidates, nil
}

// SaveCandidates replaces the stored list, keeping the given order.
func (s *Store) SaveCandidates(ctx context.Context, candidates []bracket.Candidate) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteCandidatesQuery); err != nil {
		return fmt.Errorf("failed to clear candidates: %w", err)
	}
	if err := insertCandidates(ctx, tx, candidates); err != nil {
		return fmt.Errorf("failed to insert candidates: %w", err)
	}

	return tx.Commit()
}

func insertCandidates(ctx context.Context, tx *sqlx.Tx, candidates []bracket.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}
	rows := make([]candidateRow, len(candidates))
	for i, c := range candidates {
		rows[i] = candidateRow{Candidate: c, Position: i}
	}
	_, err := tx.NamedExecContext(ctx, insertCandidatesQuery, rows)
	return err
}
