package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teensteam/namecup/internal/bracket"
)

func TestCandidates(t *testing.T) {
	first := Candidates()
	second := Candidates()

	assert.True(t, bracket.ValidateCandidateCount(len(first)).IsValid, "sample set should be playable as-is")
	for i := range first {
		assert.NotEmpty(t, first[i].Name)
		assert.NotEmpty(t, first[i].Author)
		assert.NotEqual(t, first[i].ID, second[i].ID)
	}
}
