package main

import (
	"fmt"

	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/ranking"
	"github.com/teensteam/namecup/internal/service"
	"github.com/urfave/cli/v2"
)

func tournamentCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "tournament",
		Usage: "play the bracket",
		Subcommands: []*cli.Command{
			{
				Name:  "start",
				Usage: "seed a new bracket from the candidate list",
				Action: func(c *cli.Context) error {
					state, err := e.tournaments.Start(c.Context)
					if err != nil {
						return userError(err)
					}
					printState(c, state)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "show the current match",
				Action: func(c *cli.Context) error {
					state, found, err := e.tournaments.Current(c.Context)
					if err != nil {
						return err
					}
					if !found {
						return cli.Exit(service.ErrNoTournament.Error(), 1)
					}
					printState(c, state)
					return nil
				},
			},
			{
				Name:      "pick",
				Usage:     "choose the winner of the current match",
				ArgsUsage: "<candidate id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: namecup tournament pick <candidate id>", 1)
					}
					state, err := e.tournaments.Pick(c.Context, c.Args().First())
					if err != nil {
						return userError(err)
					}
					printState(c, state)
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "discard the current bracket",
				Action: func(c *cli.Context) error {
					return e.tournaments.Reset(c.Context)
				},
			},
			{
				Name:  "leaderboard",
				Usage: "show submitter scores",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "top", Usage: "number of ranks to highlight", Value: ranking.DefaultTopN},
				},
				Action: func(c *cli.Context) error {
					standings, err := e.tournaments.Standings(c.Context, c.Int("top"))
					if err != nil {
						return userError(err)
					}
					for _, g := range standings.Top {
						fmt.Fprintf(c.App.Writer, "%s\t%s\t%d\n", g.Label(), g.Authors, g.Score)
					}
					fmt.Fprintln(c.App.Writer)
					for _, entry := range standings.Leaderboard {
						fmt.Fprintf(c.App.Writer, "%s\t%d\n", entry.Author, entry.Score)
					}
					return nil
				},
			},
		},
	}
}

func printState(c *cli.Context, state bracket.TournamentState) {
	w := c.App.Writer
	if champion, ok := state.Champion(); ok {
		fmt.Fprintf(w, "champion: %s (%s)\n", champion.Name, champion.Author)
		return
	}
	match, ok := state.CurrentMatch()
	if !ok {
		return
	}
	fmt.Fprintf(w, "%s %s\n", state.CurrentRound.Label(), bracket.RoundProgress(state))
	fmt.Fprintf(w, "  %s\t%s (%s)\n", match.Candidate1.ID, match.Candidate1.Name, match.Candidate1.Author)
	fmt.Fprintf(w, "  %s\t%s (%s)\n", match.Candidate2.ID, match.Candidate2.Name, match.Candidate2.Author)
}
