package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/metrics"
	"github.com/teensteam/namecup/internal/ranking"
)

type TournamentService struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	intn    bracket.IntN
}

func NewTournamentService(store Store, m *metrics.Metrics, opts ...Option) *TournamentService {
	o := newOptions(opts)
	return &TournamentService{
		store:   store,
		metrics: m,
		logger:  o.logger,
		intn:    o.intn,
	}
}

type Standings struct {
	Leaderboard []ranking.Entry
	Top         []ranking.Group
}

// Start seeds a new tournament from the stored candidates, replacing any
// tournament in progress.
func (s *TournamentService) Start(ctx context.Context) (bracket.TournamentState, error) {
	candidates, err := s.store.LoadCandidates(ctx)
	if err != nil {
		return bracket.TournamentState{}, fmt.Errorf("failed to load candidates: %w", err)
	}

	if v := bracket.ValidateCandidateCount(len(candidates)); !v.IsValid {
		return bracket.TournamentState{}, &ValidationError{Field: "candidates", Message: v.Message}
	}

	state, err := bracket.Initialize(candidates, s.intn)
	if err != nil {
		return bracket.TournamentState{}, err
	}

	if err := s.store.SaveTournamentState(ctx, state); err != nil {
		return bracket.TournamentState{}, err
	}

	s.metrics.TournamentsStarted.Inc()
	s.logger.InfoContext(ctx, "tournament started",
		slog.Int("candidates", len(candidates)),
		slog.String("round", string(state.CurrentRound)),
	)
	return state, nil
}

func (s *TournamentService) Current(ctx context.Context) (bracket.TournamentState, bool, error) {
	return s.store.LoadTournamentState(ctx)
}

// Pick records the candidate with winnerID as the winner of the current match.
func (s *TournamentService) Pick(ctx context.Context, winnerID string) (bracket.TournamentState, error) {
	state, found, err := s.store.LoadTournamentState(ctx)
	if err != nil {
		return bracket.TournamentState{}, err
	}
	if !found {
		return bracket.TournamentState{}, ErrNoTournament
	}

	match, ok := state.CurrentMatch()
	if !ok {
		return bracket.TournamentState{}, fmt.Errorf("%w: tournament is already finished", bracket.ErrPrecondition)
	}
	winner, ok := match.Pick(winnerID)
	if !ok {
		return bracket.TournamentState{}, fmt.Errorf("%w: winner is not part of this match", bracket.ErrPrecondition)
	}

	next, err := bracket.Advance(state, winner)
	if err != nil {
		return bracket.TournamentState{}, err
	}

	if err := s.store.SaveTournamentState(ctx, next); err != nil {
		return bracket.TournamentState{}, err
	}

	s.metrics.MatchesDecided.WithLabelValues(string(state.CurrentRound)).Inc()
	s.logger.DebugContext(ctx, "match decided",
		slog.String("round", string(state.CurrentRound)),
		slog.String("winner", winner.Name),
		slog.String("author", winner.Author),
	)

	if next.IsFinished() {
		s.metrics.TournamentsCompleted.Inc()
		s.logger.InfoContext(ctx, "tournament finished",
			slog.String("champion", winner.Name),
			slog.String("author", winner.Author),
		)
	}
	return next, nil
}

// Reset discards the tournament in progress, if any.
func (s *TournamentService) Reset(ctx context.Context) error {
	return s.store.ClearTournamentState(ctx)
}

func (s *TournamentService) Standings(ctx context.Context, n int) (*Standings, error) {
	state, found, err := s.store.LoadTournamentState(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoTournament
	}
	return &Standings{
		Leaderboard: ranking.Leaderboard(state.Scores),
		Top:         ranking.TopNWithTies(state.Scores, n),
	}, nil
}
