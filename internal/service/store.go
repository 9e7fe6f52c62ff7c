package service

import (
	"context"

	"github.com/teensteam/namecup/internal/bracket"
)

// Store is the persistence the services need. LoadTournamentState reports a
// missing tournament through found rather than an error.
type Store interface {
	LoadCandidates(ctx context.Context) ([]bracket.Candidate, error)
	SaveCandidates(ctx context.Context, candidates []bracket.Candidate) error
	LoadTournamentState(ctx context.Context) (state bracket.TournamentState, found bool, err error)
	SaveTournamentState(ctx context.Context, state bracket.TournamentState) error
	ClearTournamentState(ctx context.Context) error
}
