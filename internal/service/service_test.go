package service

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/teensteam/namecup/internal/db/dbtest"
	"github.com/teensteam/namecup/internal/metrics"
	"github.com/teensteam/namecup/internal/store"
)

type fixture struct {
	store       *store.Store
	metrics     *metrics.Metrics
	tournaments *TournamentService
	candidates  *CandidateService
}

// keepOrder makes the tournament shuffle an identity permutation.
func keepOrder(n int) int { return n - 1 }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewStore(dbtest.New(t))
	m := metrics.New(prometheus.NewRegistry())
	return &fixture{
		store:       st,
		metrics:     m,
		tournaments: NewTournamentService(st, m, WithRandom(keepOrder)),
		candidates:  NewCandidateService(st, m),
	}
}
