package views

import (
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/media"
	"github.com/teensteam/namecup/internal/ranking"
	"github.com/teensteam/namecup/internal/utils"
)

type CandidateCard struct {
	ID     string
	Name   string
	Author string
	Reason string
	Media  media.Embed
}

type MatchView struct {
	Title    string
	Progress string
	Left     CandidateCard
	Right    CandidateCard
	Top      []ranking.Group
}

type WinnerView struct {
	Champion    CandidateCard
	Leaderboard []ranking.Entry
}

func NewCandidateCard(c bracket.Candidate) CandidateCard {
	return CandidateCard{
		ID:     c.ID,
		Name:   c.Name,
		Author: c.Author,
		Reason: utils.Deref(c.Reason),
		Media:  media.Resolve(c.ImageURL),
	}
}

// PrepareMatchView builds the voting screen for the current match. It returns
// false once there is no match left to show.
func PrepareMatchView(state bracket.TournamentState) (MatchView, bool) {
	match, ok := state.CurrentMatch()
	if !ok {
		return MatchView{}, false
	}
	return MatchView{
		Title:    state.CurrentRound.Label(),
		Progress: bracket.RoundProgress(state),
		Left:     NewCandidateCard(match.Candidate1),
		Right:    NewCandidateCard(match.Candidate2),
		Top:      ranking.TopNWithTies(state.Scores, ranking.DefaultTopN),
	}, true
}

func PrepareWinnerView(state bracket.TournamentState) (WinnerView, bool) {
	champion, ok := state.Champion()
	if !ok {
		return WinnerView{}, false
	}
	return WinnerView{
		Champion:    NewCandidateCard(champion),
		Leaderboard: ranking.Leaderboard(state.Scores),
	}, true
}
