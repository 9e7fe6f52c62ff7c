package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/ranking"
)

var (
	x = bracket.Candidate{ID: "x", Name: "X", Author: "Alice"}
	y = bracket.Candidate{ID: "y", Name: "Y", Author: "Bob"}
	z = bracket.Candidate{ID: "z", Name: "Z", Author: "Alice"}
	w = bracket.Candidate{ID: "w", Name: "W", Author: "Carol"}
)

func TestStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The empty store falls back to the sample candidates.
	state, err := f.tournaments.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, bracket.Round8, state.CurrentRound)
	assert.Len(t, state.Matches, 4)

	saved, found, err := f.tournaments.Current(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, state, saved)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TournamentsStarted))
}

func TestStart_RejectsInvalidCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveCandidates(ctx, []bracket.Candidate{x, y, z}))

	_, err := f.tournaments.Start(ctx)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "3")

	_, found, err := f.tournaments.Current(ctx)
	require.NoError(t, err)
	assert.False(t, found, "no tournament should be saved")
	assert.Zero(t, testutil.ToFloat64(f.metrics.TournamentsStarted))
}

func TestPick_FullTournament(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveCandidates(ctx, []bracket.Candidate{x, y, z, w}))
	_, err := f.tournaments.Start(ctx)
	require.NoError(t, err)

	var state bracket.TournamentState
	for _, id := range []string{"x", "z", "x"} {
		state, err = f.tournaments.Pick(ctx, id)
		require.NoError(t, err)
	}

	assert.True(t, state.IsFinished())
	assert.Equal(t, bracket.Scores{{Author: "Alice", Points: 64}}, state.Scores)

	saved, found, err := f.tournaments.Current(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, state, saved)

	standings, err := f.tournaments.Standings(ctx, ranking.DefaultTopN)
	require.NoError(t, err)
	assert.Equal(t, []ranking.Entry{{Author: "Alice", Score: 64}}, standings.Leaderboard)
	assert.Equal(t, []ranking.Group{{Rank: 1, Authors: "Alice", Score: 64}}, standings.Top)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.MatchesDecided.WithLabelValues("round4")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.MatchesDecided.WithLabelValues("final")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.TournamentsCompleted))
}

func TestPick_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tournaments.Pick(ctx, "x")
	assert.ErrorIs(t, err, ErrNoTournament)

	require.NoError(t, f.store.SaveCandidates(ctx, []bracket.Candidate{x, y}))
	_, err = f.tournaments.Start(ctx)
	require.NoError(t, err)

	_, err = f.tournaments.Pick(ctx, "w")
	assert.ErrorIs(t, err, bracket.ErrPrecondition)

	// A rejected pick leaves the stored state alone.
	state, _, err := f.tournaments.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, state.CurrentMatchIndex)

	_, err = f.tournaments.Pick(ctx, "y")
	require.NoError(t, err)

	_, err = f.tournaments.Pick(ctx, "y")
	assert.ErrorIs(t, err, bracket.ErrPrecondition)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tournaments.Start(ctx)
	require.NoError(t, err)
	require.NoError(t, f.tournaments.Reset(ctx))

	_, found, err := f.tournaments.Current(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = f.tournaments.Standings(ctx, ranking.DefaultTopN)
	assert.ErrorIs(t, err, ErrNoTournament)
}

func TestStart_ScoresStartFresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveCandidates(ctx, []bracket.Candidate{x, y, z, w}))
	_, err := f.tournaments.Start(ctx)
	require.NoError(t, err)
	state, err := f.tournaments.Pick(ctx, "y")
	require.NoError(t, err)
	require.NotEmpty(t, state.Scores)

	state, err = f.tournaments.Start(ctx)
	require.NoError(t, err)
	assert.Empty(t, state.Scores)
	assert.Zero(t, state.CurrentMatchIndex)
}
