// Package seed holds the sample candidates offered when no list exists yet.
package seed

import (
	"github.com/google/uuid"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/utils"
)

var samples = []struct {
	name, author, reason string
}{
	{"Haneul", "Heesu", "Means sky. Short and bright."},
	{"Doyun", "Seunghun", ""},
	{"Seoa", "Heesu", "Easy to say in any language."},
	{"Iseo", "Minji", ""},
	{"Jian", "Seunghun", "Both grandmothers like it."},
	{"Yuna", "Jiwoo", ""},
	{"Siwoo", "Minji", "Sounds calm."},
	{"Ara", "Jiwoo", ""},
}

// Candidates returns the sample set with freshly generated ids, so it can be
// appended to an existing list more than once.
func Candidates() []bracket.Candidate {
	out := make([]bracket.Candidate, 0, len(samples))
	for _, s := range samples {
		out = append(out, bracket.Candidate{
			ID:     uuid.NewString(),
			Name:   s.name,
			Author: s.author,
			Reason: utils.OptionalString(s.reason),
		})
	}
	return out
}
