package bracket

import (
	"fmt"
	"math/rand/v2"
)

// IntN draws a uniform integer in [0, n). Tests swap it for a fixed sequence.
type IntN func(n int) int

var validCandidateCounts = []int{2, 4, 8, 16, 32}

type ValidationResult struct {
	IsValid bool
	Message string
}

func ValidateCandidateCount(count int) ValidationResult {
	for _, c := range validCandidateCounts {
		if c == count {
			return ValidationResult{IsValid: true}
		}
	}
	return ValidationResult{
		Message: fmt.Sprintf("candidates must number 2, 4, 8, 16, or 32 (currently %d)", count),
	}
}

// StartingRound maps a bracket size to its first round. Unknown sizes fall
// back to the round of 32.
func StartingRound(count int) Round {
	switch count {
	case 2:
		return Final
	case 4:
		return Round4
	case 8:
		return Round8
	case 16:
		return Round16
	default:
		return Round32
	}
}

// Shuffle returns a Fisher-Yates permutation of candidates, leaving the input
// untouched. A nil intn uses math/rand/v2.
func Shuffle(candidates []Candidate, intn IntN) []Candidate {
	if intn == nil {
		intn = rand.IntN
	}
	shuffled := append([]Candidate(nil), candidates...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Pair splits candidates into consecutive matches: (0,1), (2,3), ...
func Pair(candidates []Candidate) ([]Match, error) {
	if len(candidates)%2 != 0 {
		return nil, fmt.Errorf("%w: cannot pair %d candidates", ErrInvalidInput, len(candidates))
	}
	matches := make([]Match, 0, len(candidates)/2)
	for i := 0; i < len(candidates); i += 2 {
		matches = append(matches, Match{
			Candidate1: candidates[i],
			Candidate2: candidates[i+1],
		})
	}
	return matches, nil
}

// Initialize seeds a fresh tournament. Scores always start empty.
func Initialize(candidates []Candidate, intn IntN) (TournamentState, error) {
	if v := ValidateCandidateCount(len(candidates)); !v.IsValid {
		return TournamentState{}, fmt.Errorf("%w: %s", ErrInvalidInput, v.Message)
	}

	matches, err := Pair(Shuffle(candidates, intn))
	if err != nil {
		return TournamentState{}, err
	}

	return TournamentState{
		CurrentRound:      StartingRound(len(candidates)),
		CurrentMatchIndex: 0,
		Matches:           matches,
		Winners:           []Candidate{},
		Scores:            Scores{},
	}, nil
}

// Advance records winner as the victor of the current match and returns the
// resulting state. The given state is not modified.
func Advance(state TournamentState, winner Candidate) (TournamentState, error) {
	match, ok := state.CurrentMatch()
	if !ok {
		return state, fmt.Errorf("%w: no match left to decide in %s", ErrPrecondition, state.CurrentRound)
	}
	picked, ok := match.Pick(winner.ID)
	if !ok {
		return state, fmt.Errorf("%w: winner is not part of this match", ErrPrecondition)
	}
	if picked.Name != winner.Name || picked.Author != winner.Author {
		return state, fmt.Errorf("%w: winner does not match the candidate in this match", ErrPrecondition)
	}
	// The match's copy is recorded, not the caller's.
	winner = picked

	next := state.clone()
	next.Winners = append(next.Winners, winner)
	next.Scores = next.Scores.Add(winner.Author, state.CurrentRound.Points())
	next.CurrentMatchIndex = state.CurrentMatchIndex + 1

	if next.CurrentMatchIndex < len(next.Matches) {
		return next, nil
	}

	if state.CurrentRound == Final {
		next.Scores = next.Scores.Add(winner.Author, ChampionBonus)
		return next, nil
	}

	round, ok := state.CurrentRound.Next()
	if !ok {
		return state, fmt.Errorf("%w: unknown round %q", ErrPrecondition, state.CurrentRound)
	}
	matches, err := Pair(next.Winners)
	if err != nil {
		return state, err
	}

	return TournamentState{
		CurrentRound:      round,
		CurrentMatchIndex: 0,
		Matches:           matches,
		Winners:           []Candidate{},
		Scores:            next.Scores,
	}, nil
}

// RoundProgress formats the current match position as "current/total".
func RoundProgress(state TournamentState) string {
	return fmt.Sprintf("%d/%d", state.CurrentMatchIndex+1, len(state.Matches))
}
