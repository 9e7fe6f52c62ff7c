package bracket

type Score struct {
	Author string `json:"author"`
	Points int    `json:"points"`
}

// Scores holds cumulative points per submitter in the order each submitter
// first scored. The order is what breaks ties on the leaderboard.
type Scores []Score

func (s Scores) Get(author string) int {
	for _, sc := range s {
		if sc.Author == author {
			return sc.Points
		}
	}
	return 0
}

// Add returns a copy of s with points added to author, appending the author
// at the end if they have not scored yet.
func (s Scores) Add(author string, points int) Scores {
	out := make(Scores, len(s), len(s)+1)
	copy(out, s)
	for i := range out {
		if out[i].Author == author {
			out[i].Points += points
			return out
		}
	}
	return append(out, Score{Author: author, Points: points})
}

func (s Scores) Map() map[string]int {
	m := make(map[string]int, len(s))
	for _, sc := range s {
		m[sc.Author] = sc.Points
	}
	return m
}

type TournamentState struct {
	CurrentRound      Round       `json:"currentRound"`
	CurrentMatchIndex int         `json:"currentMatchIndex"`
	Matches           []Match     `json:"matches"`
	Winners           []Candidate `json:"winners"`
	Scores            Scores      `json:"scores"`
}

// IsFinished reports whether the championship match has been decided.
func (t TournamentState) IsFinished() bool {
	return t.CurrentRound == Final && t.CurrentMatchIndex >= len(t.Matches)
}

func (t TournamentState) CurrentMatch() (Match, bool) {
	if t.CurrentMatchIndex < 0 || t.CurrentMatchIndex >= len(t.Matches) {
		return Match{}, false
	}
	return t.Matches[t.CurrentMatchIndex], true
}

// Champion is the winner of the final, available once the tournament is over.
func (t TournamentState) Champion() (Candidate, bool) {
	if !t.IsFinished() || len(t.Winners) == 0 {
		return Candidate{}, false
	}
	return t.Winners[len(t.Winners)-1], true
}

func (t TournamentState) clone() TournamentState {
	out := t
	out.Matches = append([]Match(nil), t.Matches...)
	out.Winners = append([]Candidate(nil), t.Winners...)
	out.Scores = append(Scores(nil), t.Scores...)
	return out
}
