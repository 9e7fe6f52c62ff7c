package bracket

type Match struct {
	Candidate1 Candidate `json:"candidate1"`
	Candidate2 Candidate `json:"candidate2"`
}

// Has reports whether the candidate with the given id plays in this match.
func (m Match) Has(id string) bool {
	return m.Candidate1.ID == id || m.Candidate2.ID == id
}

// Pick returns the match participant with the given id.
func (m Match) Pick(id string) (Candidate, bool) {
	switch id {
	case m.Candidate1.ID:
		return m.Candidate1, true
	case m.Candidate2.ID:
		return m.Candidate2, true
	}
	return Candidate{}, false
}
