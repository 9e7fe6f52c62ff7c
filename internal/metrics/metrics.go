package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "namecup"

type Metrics struct {
	TournamentsStarted   prometheus.Counter
	TournamentsCompleted prometheus.Counter
	MatchesDecided       *prometheus.CounterVec
	CandidatesImported   prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TournamentsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_started_total",
			Help:      "Tournaments seeded from the candidate list.",
		}),
		TournamentsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_completed_total",
			Help:      "Tournaments whose final has been decided.",
		}),
		MatchesDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_decided_total",
			Help:      "Match decisions, by round.",
		}, []string{"round"}),
		CandidatesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_imported_total",
			Help:      "Candidates added through bulk import.",
		}),
	}

	reg.MustRegister(m.TournamentsStarted, m.TournamentsCompleted, m.MatchesDecided, m.CandidatesImported)
	return m
}
