package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/importer"
	"github.com/teensteam/namecup/internal/metrics"
	"github.com/teensteam/namecup/internal/seed"
	"github.com/teensteam/namecup/internal/utils"
)

const maxNameLength = 50

type CandidateService struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewCandidateService(store Store, m *metrics.Metrics, opts ...Option) *CandidateService {
	o := newOptions(opts)
	return &CandidateService{store: store, metrics: m, logger: o.logger}
}

type CandidateInput struct {
	Name     string
	Author   string
	ImageURL string
	Reason   string
}

type ImportResult struct {
	Added   []bracket.Candidate
	Skipped []int
}

// CountStatus reports whether the current list can seed a tournament.
type CountStatus struct {
	Count      int
	Validation bracket.ValidationResult
}

func (in CandidateInput) validate() error {
	name, author := strings.TrimSpace(in.Name), strings.TrimSpace(in.Author)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if author == "" {
		return &ValidationError{Field: "author", Message: "author is required"}
	}
	if len([]rune(name)) > maxNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("name '%s' exceeds %d characters", name, maxNameLength)}
	}
	return nil
}

func (in CandidateInput) apply(c bracket.Candidate) bracket.Candidate {
	c.Name = strings.TrimSpace(in.Name)
	c.Author = strings.TrimSpace(in.Author)
	c.ImageURL = utils.OptionalString(in.ImageURL)
	c.Reason = utils.OptionalString(in.Reason)
	return c
}

func (s *CandidateService) List(ctx context.Context) ([]bracket.Candidate, error) {
	return s.store.LoadCandidates(ctx)
}

func (s *CandidateService) Status(ctx context.Context) (*CountStatus, error) {
	candidates, err := s.store.LoadCandidates(ctx)
	if err != nil {
		return nil, err
	}
	return &CountStatus{
		Count:      len(candidates),
		Validation: bracket.ValidateCandidateCount(len(candidates)),
	}, nil
}

func (s *CandidateService) Add(ctx context.Context, in CandidateInput) (bracket.Candidate, error) {
	if err := in.validate(); err != nil {
		return bracket.Candidate{}, err
	}

	candidates, err := s.store.LoadCandidates(ctx)
	if err != nil {
		return bracket.Candidate{}, err
	}

	c := in.apply(bracket.Candidate{ID: uuid.NewString()})
	if err := s.store.SaveCandidates(ctx, append(candidates, c)); err != nil {
		return bracket.Candidate{}, err
	}
	s.logger.DebugContext(ctx, "candidate added",
		slog.String("id", c.ID),
		slog.String("name", c.Name),
	)
	return c, nil
}

// Update edits a candidate in place. A tournament already in progress keeps
// its own copy and is not affected.
func (s *CandidateService) Update(ctx context.Context, id string, in CandidateInput) (bracket.Candidate, error) {
	if err := in.validate(); err != nil {
		return bracket.Candidate{}, err
	}

	candidates, err := s.store.LoadCandidates(ctx)
	if err != nil {
		return bracket.Candidate{}, err
	}

	for i := range candidates {
		if candidates[i].ID == id {
			candidates[i] = in.apply(candidates[i])
			if err := s.store.SaveCandidates(ctx, candidates); err != nil {
				return bracket.Candidate{}, err
			}
			s.logger.DebugContext(ctx, "candidate updated",
				slog.String("id", id),
				slog.String("name", candidates[i].Name),
			)
			return candidates[i], nil
		}
	}
	return bracket.Candidate{}, fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
}

func (s *CandidateService) Delete(ctx context.Context, id string) error {
	candidates, err := s.store.LoadCandidates(ctx)
	if err != nil {
		return err
	}

	kept := make([]bracket.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(candidates) {
		return fmt.Errorf("%w: %s", ErrCandidateNotFound, id)
	}

	return s.store.SaveCandidates(ctx, kept)
}

// Import appends the candidates found in an uploaded CSV or XLSX file. Rows
// without a name or author are skipped and reported back.
func (s *CandidateService) Import(ctx context.Context, fileName string, data []byte) (*ImportResult, error) {
	parser, err := importer.ForFile(fileName)
	if err != nil {
		return nil, &ValidationError{Field: "file", Message: err.Error()}
	}

	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, &ValidationError{Field: "file", Message: err.Error()}
	}

	added := make([]bracket.Candidate, 0, len(parsed.Records))
	for _, r := range parsed.Records {
		added = append(added, bracket.Candidate{
			ID:       uuid.NewString(),
			Name:     r.Name,
			Author:   r.Author,
			ImageURL: r.ImageURL,
			Reason:   r.Reason,
		})
	}

	if len(added) > 0 {
		candidates, err := s.store.LoadCandidates(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.store.SaveCandidates(ctx, append(candidates, added...)); err != nil {
			return nil, err
		}
	}

	s.metrics.CandidatesImported.Add(float64(len(added)))
	s.logger.InfoContext(ctx, "candidates imported",
		slog.String("file", fileName),
		slog.Int("added", len(added)),
		slog.Int("skipped", len(parsed.Skipped)),
	)
	return &ImportResult{Added: added, Skipped: parsed.Skipped}, nil
}

// AppendSeed adds the sample candidates to the end of the list.
func (s *CandidateService) AppendSeed(ctx context.Context) ([]bracket.Candidate, error) {
	candidates, err := s.store.LoadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	candidates = append(candidates, seed.Candidates()...)
	if err := s.store.SaveCandidates(ctx, candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}
