package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teensteam/namecup/internal/bracket"
)

// DefaultTopN is how many rank groups the in-progress table shows.
const DefaultTopN = 3

type Entry struct {
	Author string `json:"author"`
	Score  int    `json:"score"`
}

type Group struct {
	Rank    int    `json:"rank"`
	Authors string `json:"authors"`
	Score   int    `json:"score"`
	IsTied  bool   `json:"isTied"`
}

// Label renders the rank the way the score table shows it, e.g. "2nd" or
// "T-1st" for a shared rank.
func (g Group) Label() string {
	label := ordinal(g.Rank)
	if g.IsTied {
		return "T-" + label
	}
	return label
}

// Leaderboard lists every submitter by descending score. Equal scores keep the
// order in which the submitters first scored.
func Leaderboard(scores bracket.Scores) []Entry {
	entries := make([]Entry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, Entry{Author: s.Author, Score: s.Points})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// TopNWithTies groups submitters sharing a score and assigns dense ranks to
// the groups. At most n groups are returned.
func TopNWithTies(scores bracket.Scores, n int) []Group {
	if n <= 0 {
		return []Group{}
	}

	leaderboard := Leaderboard(scores)
	result := make([]Group, 0, n)

	rank := 1
	for i := 0; i < len(leaderboard) && rank <= n; rank++ {
		score := leaderboard[i].Score
		var authors []string
		for i < len(leaderboard) && leaderboard[i].Score == score {
			authors = append(authors, leaderboard[i].Author)
			i++
		}

		result = append(result, Group{
			Rank:    rank,
			Authors: strings.Join(authors, ", "),
			Score:   score,
			IsTied:  len(authors) > 1,
		})
	}

	return result
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
