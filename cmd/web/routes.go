package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/chart"
	"github.com/teensteam/namecup/internal/httputil"
	"github.com/teensteam/namecup/internal/ranking"
	"github.com/teensteam/namecup/internal/service"
	"github.com/teensteam/namecup/views"
)

const (
	flashKey      = "flash"
	maxUploadSize = 1 << 20
)

type application struct {
	tournaments *service.TournamentService
	candidates  *service.CandidateService
	sessions    *scs.SessionManager
	registry    *prometheus.Registry
	corsOrigins []string
}

type tournamentResponse struct {
	State    bracket.TournamentState `json:"state"`
	Finished bool                    `json:"finished"`
	Progress string                  `json:"progress,omitempty"`
	Top      []ranking.Group         `json:"top"`
}

type pickRequest struct {
	WinnerID string `json:"winnerId"`
}

func newRouter(app *application) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Group(func(r chi.Router) {
		r.Use(app.sessions.LoadAndSave)

		r.Get("/", app.home)
		r.Post("/tournament/start", app.startTournament)
		r.Post("/tournament/pick", app.pickWinner)
		r.Post("/tournament/reset", app.resetTournament)

		r.Get("/candidates", app.listCandidates)
		r.Post("/candidates", app.addCandidate)
		r.Post("/candidates/{id}", app.updateCandidate)
		r.Post("/candidates/{id}/delete", app.deleteCandidate)
		r.Post("/candidates/import", app.importCandidates)
		r.Post("/candidates/seed", app.seedCandidates)
	})

	r.Get("/leaderboard.png", app.leaderboardChart)

	r.Route("/api", func(r chi.Router) {
		if len(app.corsOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: app.corsOrigins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Get("/tournament", app.apiTournament)
		r.Post("/tournament/pick", app.apiPick)
		r.Get("/leaderboard", app.apiLeaderboard)
		r.Get("/candidates", app.apiCandidates)
	})

	return r
}

// redirectWithFlash sends the browser back to a page, carrying a message for
// the next render. Only user-correctable errors are flashed.
func (app *application) redirectWithFlash(w http.ResponseWriter, r *http.Request, to string, err error) bool {
	if err == nil {
		http.Redirect(w, r, to, http.StatusSeeOther)
		return true
	}
	if !httputil.IsUserError(err) {
		return false
	}
	app.sessions.Put(r.Context(), flashKey, err.Error())
	http.Redirect(w, r, to, http.StatusSeeOther)
	return true
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	msg := app.sessions.PopString(r.Context(), flashKey)

	state, found, err := app.tournaments.Current(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to load tournament", err)
		return
	}

	if !found {
		status, err := app.candidates.Status(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to load candidates", err)
			return
		}
		views.Render(w, r, views.StartPage(status.Count, status.Validation, msg))
		return
	}

	if vm, ok := views.PrepareWinnerView(state); ok {
		views.Render(w, r, views.WinnerPage(vm))
		return
	}
	vm, ok := views.PrepareMatchView(state)
	if !ok {
		httputil.InternalServerError(w, "Tournament has no current match", fmt.Errorf("round %s index %d", state.CurrentRound, state.CurrentMatchIndex))
		return
	}
	views.Render(w, r, views.MatchPage(vm, msg))
}

func (app *application) startTournament(w http.ResponseWriter, r *http.Request) {
	_, err := app.tournaments.Start(r.Context())
	if !app.redirectWithFlash(w, r, "/", err) {
		httputil.InternalServerError(w, "Failed to start tournament", err)
	}
}

func (app *application) pickWinner(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}
	winnerID := r.Form.Get("winner_id")
	if winnerID == "" {
		httputil.BadRequest(w, "Missing winner", nil)
		return
	}

	_, err := app.tournaments.Pick(r.Context(), winnerID)
	if !app.redirectWithFlash(w, r, "/", err) {
		httputil.InternalServerError(w, "Failed to advance winner", err)
	}
}

func (app *application) resetTournament(w http.ResponseWriter, r *http.Request) {
	if err := app.tournaments.Reset(r.Context()); err != nil {
		httputil.InternalServerError(w, "Failed to reset tournament", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) listCandidates(w http.ResponseWriter, r *http.Request) {
	msg := app.sessions.PopString(r.Context(), flashKey)

	candidates, err := app.candidates.List(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list candidates", err)
		return
	}
	views.Render(w, r, views.CandidatesPage(candidates, bracket.ValidateCandidateCount(len(candidates)), msg))
}

func (app *application) addCandidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	_, err := app.candidates.Add(r.Context(), candidateInput(r))
	if !app.redirectWithFlash(w, r, "/candidates", err) {
		httputil.InternalServerError(w, "Failed to add candidate", err)
	}
}

func (app *application) updateCandidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.BadRequest(w, "Invalid form data", err)
		return
	}

	_, err := app.candidates.Update(r.Context(), chi.URLParam(r, "id"), candidateInput(r))
	if !app.redirectWithFlash(w, r, "/candidates", err) {
		httputil.InternalServerError(w, "Failed to update candidate", err)
	}
}

func (app *application) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	err := app.candidates.Delete(r.Context(), chi.URLParam(r, "id"))
	if !app.redirectWithFlash(w, r, "/candidates", err) {
		httputil.InternalServerError(w, "Failed to delete candidate", err)
	}
}

func (app *application) importCandidates(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.BadRequest(w, "Invalid upload", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.BadRequest(w, "Missing file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.BadRequest(w, "Failed to read upload", err)
		return
	}

	res, err := app.candidates.Import(r.Context(), header.Filename, data)
	if err == nil {
		msg := fmt.Sprintf("Imported %d candidates", len(res.Added))
		if len(res.Skipped) > 0 {
			msg += fmt.Sprintf(", skipped rows %v", res.Skipped)
		}
		app.sessions.Put(r.Context(), flashKey, msg)
	}
	if !app.redirectWithFlash(w, r, "/candidates", err) {
		httputil.InternalServerError(w, "Failed to import candidates", err)
	}
}

func (app *application) seedCandidates(w http.ResponseWriter, r *http.Request) {
	_, err := app.candidates.AppendSeed(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to add sample candidates", err)
		return
	}
	http.Redirect(w, r, "/candidates", http.StatusSeeOther)
}

func (app *application) apiTournament(w http.ResponseWriter, r *http.Request) {
	state, found, err := app.tournaments.Current(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to load tournament", err)
		return
	}
	if !found {
		httputil.NotFound(w, service.ErrNoTournament.Error(), nil)
		return
	}
	httputil.JSON(w, http.StatusOK, newTournamentResponse(state))
}

func (app *application) apiPick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.BadRequest(w, "Invalid request body", err)
		return
	}

	state, err := app.tournaments.Pick(r.Context(), req.WinnerID)
	if err != nil {
		httputil.Fail(w, "Failed to advance winner", err)
		return
	}
	httputil.JSON(w, http.StatusOK, newTournamentResponse(state))
}

func (app *application) apiLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := app.tournaments.Standings(r.Context(), ranking.DefaultTopN)
	if err != nil {
		httputil.Fail(w, "Failed to load leaderboard", err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]any{
		"leaderboard": standings.Leaderboard,
		"top":         standings.Top,
	})
}

func (app *application) leaderboardChart(w http.ResponseWriter, r *http.Request) {
	var entries []ranking.Entry
	standings, err := app.tournaments.Standings(r.Context(), ranking.DefaultTopN)
	switch {
	case err == nil:
		entries = standings.Leaderboard
	case !errors.Is(err, service.ErrNoTournament):
		httputil.InternalServerError(w, "Failed to load leaderboard", err)
		return
	}

	png, err := chart.Leaderboard(entries)
	if err != nil {
		httputil.InternalServerError(w, "Failed to draw leaderboard", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

func (app *application) apiCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := app.candidates.List(r.Context())
	if err != nil {
		httputil.InternalServerError(w, "Failed to list candidates", err)
		return
	}
	httputil.JSON(w, http.StatusOK, candidates)
}

func candidateInput(r *http.Request) service.CandidateInput {
	return service.CandidateInput{
		Name:     r.Form.Get("name"),
		Author:   r.Form.Get("author"),
		ImageURL: r.Form.Get("image_url"),
		Reason:   r.Form.Get("reason"),
	}
}

func newTournamentResponse(state bracket.TournamentState) tournamentResponse {
	resp := tournamentResponse{
		State:    state,
		Finished: state.IsFinished(),
		Top:      ranking.TopNWithTies(state.Scores, ranking.DefaultTopN),
	}
	if !resp.Finished {
		resp.Progress = bracket.RoundProgress(state)
	}
	return resp
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
