package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/service"
	"github.com/teensteam/namecup/internal/utils"
	"github.com/urfave/cli/v2"
)

func candidatesCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "candidates",
		Usage: "manage the candidate list",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print all candidates",
				Action: func(c *cli.Context) error {
					status, err := e.candidates.Status(c.Context)
					if err != nil {
						return err
					}
					candidates, err := e.candidates.List(c.Context)
					if err != nil {
						return err
					}
					for _, cand := range candidates {
						printCandidate(c, cand)
					}
					fmt.Fprintf(c.App.Writer, "%d candidates\n", status.Count)
					if !status.Validation.IsValid {
						fmt.Fprintln(c.App.Writer, status.Validation.Message)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "add a candidate",
				ArgsUsage: "<name> <author>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "image", Usage: "image or video link"},
					&cli.StringFlag{Name: "reason", Usage: "why this name"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.Exit("usage: namecup candidates add <name> <author>", 1)
					}
					cand, err := e.candidates.Add(c.Context, service.CandidateInput{
						Name:     c.Args().Get(0),
						Author:   c.Args().Get(1),
						ImageURL: c.String("image"),
						Reason:   c.String("reason"),
					})
					if err != nil {
						return userError(err)
					}
					printCandidate(c, cand)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "edit a candidate; fields not given keep their value",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "new name"},
					&cli.StringFlag{Name: "author", Usage: "new author"},
					&cli.StringFlag{Name: "image", Usage: "image or video link, empty to clear"},
					&cli.StringFlag{Name: "reason", Usage: "why this name, empty to clear"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: namecup candidates update [flags] <id>", 1)
					}
					id := c.Args().First()

					current, err := findCandidate(c, e, id)
					if err != nil {
						return userError(err)
					}
					in := service.CandidateInput{
						Name:     current.Name,
						Author:   current.Author,
						ImageURL: utils.Deref(current.ImageURL),
						Reason:   utils.Deref(current.Reason),
					}
					if c.IsSet("name") {
						in.Name = c.String("name")
					}
					if c.IsSet("author") {
						in.Author = c.String("author")
					}
					if c.IsSet("image") {
						in.ImageURL = c.String("image")
					}
					if c.IsSet("reason") {
						in.Reason = c.String("reason")
					}

					updated, err := e.candidates.Update(c.Context, id, in)
					if err != nil {
						return userError(err)
					}
					printCandidate(c, updated)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "remove a candidate",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: namecup candidates delete <id>", 1)
					}
					return userError(e.candidates.Delete(c.Context, c.Args().First()))
				},
			},
			{
				Name:      "import",
				Usage:     "append candidates from a CSV or XLSX file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("usage: namecup candidates import <file>", 1)
					}
					path := c.Args().First()
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", path, err)
					}
					res, err := e.candidates.Import(c.Context, filepath.Base(path), data)
					if err != nil {
						return userError(err)
					}
					fmt.Fprintf(c.App.Writer, "imported %d candidates\n", len(res.Added))
					if len(res.Skipped) > 0 {
						fmt.Fprintf(c.App.Writer, "skipped rows %v\n", res.Skipped)
					}
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "append the sample candidates",
				Action: func(c *cli.Context) error {
					candidates, err := e.candidates.AppendSeed(c.Context)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%d candidates\n", len(candidates))
					return nil
				},
			},
		},
	}
}

func findCandidate(c *cli.Context, e *env, id string) (bracket.Candidate, error) {
	candidates, err := e.candidates.List(c.Context)
	if err != nil {
		return bracket.Candidate{}, err
	}
	for _, cand := range candidates {
		if cand.ID == id {
			return cand, nil
		}
	}
	return bracket.Candidate{}, fmt.Errorf("%w: %s", service.ErrCandidateNotFound, id)
}

func printCandidate(c *cli.Context, cand bracket.Candidate) {
	fmt.Fprintf(c.App.Writer, "%s\t%s\t%s", cand.ID, cand.Name, cand.Author)
	if reason := utils.Deref(cand.Reason); reason != "" {
		fmt.Fprintf(c.App.Writer, "\t%s", reason)
	}
	fmt.Fprintln(c.App.Writer)
}
