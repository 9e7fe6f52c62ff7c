package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/seed"
)

func TestCandidateService_Add(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input CandidateInput
		field string
	}{
		{"missing name", CandidateInput{Author: "Heesu"}, "name"},
		{"blank author", CandidateInput{Name: "Haneul", Author: "   "}, "author"},
		{"name too long", CandidateInput{Name: string(make([]rune, 51)), Author: "Heesu"}, "name"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.candidates.Add(ctx, tc.input)
			var v *ValidationError
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tc.field, v.Field)
		})
	}

	c, err := f.candidates.Add(ctx, CandidateInput{Name: " Haneul ", Author: "Heesu", ImageURL: " ", Reason: "sky"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Haneul", c.Name)
	assert.Nil(t, c.ImageURL)
	require.NotNil(t, c.Reason)
	assert.Equal(t, "sky", *c.Reason)

	list, err := f.candidates.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(seed.Candidates())+1)
	assert.Equal(t, c, list[len(list)-1])
}

func TestCandidateService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveCandidates(ctx, []bracket.Candidate{x, y}))
	_, err := f.tournaments.Start(ctx)
	require.NoError(t, err)

	updated, err := f.candidates.Update(ctx, "x", CandidateInput{Name: "X2", Author: "Dana"})
	require.NoError(t, err)
	assert.Equal(t, bracket.Candidate{ID: "x", Name: "X2", Author: "Dana"}, updated)

	// The running tournament keeps the candidate as it was when seeded.
	state, _, err := f.tournaments.Current(ctx)
	require.NoError(t, err)
	assert.True(t, state.Matches[0].Has("x"))
	picked, _ := state.Matches[0].Pick("x")
	assert.Equal(t, "Alice", picked.Author)

	_, err = f.candidates.Update(ctx, "nope", CandidateInput{Name: "N", Author: "A"})
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	require.NoError(t, f.candidates.Delete(ctx, "y"))
	list, err := f.candidates.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []bracket.Candidate{updated}, list)

	assert.ErrorIs(t, f.candidates.Delete(ctx, "y"), ErrCandidateNotFound)
}

func TestCandidateService_Import(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SaveCandidates(ctx, []bracket.Candidate{x}))

	csv := "Haneul,Heesu,,Means sky\nDoyun,Seunghun\n,NoName\n"
	res, err := f.candidates.Import(ctx, "names.csv", []byte(csv))
	require.NoError(t, err)
	require.Len(t, res.Added, 2)
	assert.Equal(t, []int{3}, res.Skipped)
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CandidatesImported))

	list, err := f.candidates.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, x, list[0])
	assert.Equal(t, "Haneul", list[1].Name)
	assert.Equal(t, "Seunghun", list[2].Author)
	assert.NotEqual(t, list[1].ID, list[2].ID)

	_, err = f.candidates.Import(ctx, "names.pdf", []byte("whatever"))
	assert.True(t, IsValidation(err))
}

func TestCandidateService_AppendSeedAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	status, err := f.candidates.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, status.Count)
	assert.True(t, status.Validation.IsValid)

	list, err := f.candidates.AppendSeed(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 16)

	require.NoError(t, f.candidates.Delete(ctx, list[0].ID))
	status, err = f.candidates.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, status.Count)
	assert.False(t, status.Validation.IsValid)
	assert.Contains(t, status.Validation.Message, "15")
}

func TestCandidateService_UsesInjectedLogger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewCandidateService(f.store, f.metrics, WithLogger(logger))

	_, err := svc.Import(ctx, "names.csv", []byte("Nari,Jiwoo\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "candidates imported")
	assert.Contains(t, buf.String(), "added=1")

	c, err := svc.Add(ctx, CandidateInput{Name: "Bom", Author: "Minji"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "candidate added")
	assert.Contains(t, buf.String(), "id="+c.ID)
}
