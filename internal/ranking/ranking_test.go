package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teensteam/namecup/internal/bracket"
)

func scoresOf(pairs ...any) bracket.Scores {
	var s bracket.Scores
	for i := 0; i < len(pairs); i += 2 {
		s = s.Add(pairs[i].(string), pairs[i+1].(int))
	}
	return s
}

func TestLeaderboard(t *testing.T) {
	t.Run("distinct scores sort strictly descending", func(t *testing.T) {
		board := Leaderboard(scoresOf("Carol", 3, "Alice", 64, "Bob", 12, "Dan", 1))
		assert.Equal(t, []Entry{
			{Author: "Alice", Score: 64},
			{Author: "Bob", Score: 12},
			{Author: "Carol", Score: 3},
			{Author: "Dan", Score: 1},
		}, board)
		for i := 1; i < len(board); i++ {
			assert.Greater(t, board[i-1].Score, board[i].Score)
		}
	})

	t.Run("ties keep first-scored order", func(t *testing.T) {
		board := Leaderboard(scoresOf("Zed", 4, "Amy", 8, "Max", 4))
		assert.Equal(t, []Entry{
			{Author: "Amy", Score: 8},
			{Author: "Zed", Score: 4},
			{Author: "Max", Score: 4},
		}, board)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Leaderboard(nil))
	})
}

func TestTopNWithTies(t *testing.T) {
	testCases := []struct {
		name     string
		scores   bracket.Scores
		n        int
		expected []Group
	}{
		{
			name:   "two-way tie for first",
			scores: scoresOf("A", 10, "B", 10, "C", 5),
			n:      3,
			expected: []Group{
				{Rank: 1, Authors: "A, B", Score: 10, IsTied: true},
				{Rank: 2, Authors: "C", Score: 5, IsTied: false},
			},
		},
		{
			name:     "empty scores",
			scores:   bracket.Scores{},
			n:        3,
			expected: []Group{},
		},
		{
			name:   "truncates to n groups",
			scores: scoresOf("A", 40, "B", 30, "C", 20, "D", 10),
			n:      3,
			expected: []Group{
				{Rank: 1, Authors: "A", Score: 40},
				{Rank: 2, Authors: "B", Score: 30},
				{Rank: 3, Authors: "C", Score: 20},
			},
		},
		{
			name:   "tied group takes a single slot",
			scores: scoresOf("A", 9, "B", 4, "C", 4, "D", 4, "E", 2, "F", 1),
			n:      3,
			expected: []Group{
				{Rank: 1, Authors: "A", Score: 9},
				{Rank: 2, Authors: "B, C, D", Score: 4, IsTied: true},
				{Rank: 3, Authors: "E", Score: 2},
			},
		},
		{
			name:   "n of one",
			scores: scoresOf("A", 1, "B", 1),
			n:      1,
			expected: []Group{
				{Rank: 1, Authors: "A, B", Score: 1, IsTied: true},
			},
		},
		{
			name:     "non-positive n",
			scores:   scoresOf("A", 1),
			n:        0,
			expected: []Group{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TopNWithTies(tc.scores, tc.n))
		})
	}
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "1st", Group{Rank: 1}.Label())
	assert.Equal(t, "T-2nd", Group{Rank: 2, IsTied: true}.Label())
	assert.Equal(t, "3rd", Group{Rank: 3}.Label())
	assert.Equal(t, "11th", Group{Rank: 11}.Label())
}
