package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teensteam/namecup/internal/db/dbtest"
	"github.com/teensteam/namecup/internal/metrics"
	"github.com/teensteam/namecup/internal/service"
	"github.com/teensteam/namecup/internal/store"
)

type testServer struct {
	*httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	st := store.NewStore(dbtest.New(t))

	app := &application{
		tournaments: service.NewTournamentService(st, m),
		candidates:  service.NewCandidateService(st, m),
		sessions:    scs.New(),
		registry:    registry,
		corsOrigins: []string{"https://friends.example"},
	}

	srv := httptest.NewServer(newRouter(app))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testServer{Server: srv, client: client}
}

func (ts *testServer) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := ts.client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func (ts *testServer) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := ts.client.PostForm(ts.URL+path, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (ts *testServer) currentMatchIDs(t *testing.T) (string, string) {
	t.Helper()
	status, body := ts.get(t, "/api/tournament")
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		State struct {
			CurrentMatchIndex int `json:"currentMatchIndex"`
			Matches           []struct {
				Candidate1 struct {
					ID string `json:"id"`
				} `json:"candidate1"`
				Candidate2 struct {
					ID string `json:"id"`
				} `json:"candidate2"`
			} `json:"matches"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	m := resp.State.Matches[resp.State.CurrentMatchIndex]
	return m.Candidate1.ID, m.Candidate2.ID
}

func TestHome_StartPageWithSampleCandidates(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.get(t, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "8 candidates are ready.")
	assert.Contains(t, body, `action="/tournament/start"`)
}

func TestTournamentFlow(t *testing.T) {
	ts := newTestServer(t)

	status, _ := ts.get(t, "/api/tournament")
	assert.Equal(t, http.StatusNotFound, status)

	resp := ts.postForm(t, "/tournament/start", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	status, body := ts.get(t, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "1/4")

	for i := 0; i < 7; i++ {
		left, _ := ts.currentMatchIDs(t)
		resp := ts.postForm(t, "/tournament/pick", url.Values{"winner_id": {left}})
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}

	status, body = ts.get(t, "/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Winner!")

	status, body = ts.get(t, "/api/leaderboard")
	require.Equal(t, http.StatusOK, status)
	var standings struct {
		Leaderboard []struct {
			Author string `json:"author"`
			Score  int    `json:"score"`
		} `json:"leaderboard"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &standings))
	require.NotEmpty(t, standings.Leaderboard)
	total := 0
	for _, e := range standings.Leaderboard {
		total += e.Score
	}
	// 4 quarterfinal wins, 2 semifinal wins, the final and the title.
	assert.Equal(t, 4*4+2*8+16+32, total)

	resp = ts.postForm(t, "/tournament/reset", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	status, _ = ts.get(t, "/api/tournament")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPick_ForeignWinnerIsFlashed(t *testing.T) {
	ts := newTestServer(t)
	ts.postForm(t, "/tournament/start", nil)

	resp := ts.postForm(t, "/tournament/pick", url.Values{"winner_id": {"stranger"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := ts.get(t, "/")
	assert.Contains(t, body, "winner is not part of this match")

	_, body = ts.get(t, "/")
	assert.NotContains(t, body, "winner is not part of this match", "flash should only show once")
}

func TestAPIPick(t *testing.T) {
	ts := newTestServer(t)

	post := func(id string) *http.Response {
		payload, _ := json.Marshal(map[string]string{"winnerId": id})
		resp, err := ts.client.Post(ts.URL+"/api/tournament/pick", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	assert.Equal(t, http.StatusNotFound, post("anyone").StatusCode)

	ts.postForm(t, "/tournament/start", nil)
	assert.Equal(t, http.StatusBadRequest, post("stranger").StatusCode)

	_, right := ts.currentMatchIDs(t)
	assert.Equal(t, http.StatusOK, post(right).StatusCode)
}

func TestCandidates(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postForm(t, "/candidates", url.Values{"name": {"Nari"}, "author": {"Jiwoo"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/candidates", resp.Header.Get("Location"))

	_, body := ts.get(t, "/candidates")
	assert.Contains(t, body, "Nari")
	assert.Contains(t, body, "currently 9")

	resp = ts.postForm(t, "/candidates", url.Values{"name": {""}, "author": {"Jiwoo"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = ts.get(t, "/candidates")
	assert.Contains(t, body, `class="flash"`)

	resp = ts.postForm(t, "/candidates/missing/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestCandidatesImport(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "names.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("name,author\nNari,Jiwoo\nBom,Minji\n,Nobody\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := ts.client.Post(ts.URL+"/candidates/import", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := ts.get(t, "/candidates")
	assert.Contains(t, body, "Imported 2 candidates")
	assert.Contains(t, body, "Bom")
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.postForm(t, "/tournament/start", nil)

	status, body := ts.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, "namecup_tournaments_started_total 1"), body)
}

func TestLeaderboardChart(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.client.Get(ts.URL + "/leaderboard.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}

func TestAPICORS(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/candidates", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://friends.example")

	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://friends.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCandidatesUpdate(t *testing.T) {
	ts := newTestServer(t)

	ts.postForm(t, "/candidates", url.Values{"name": {"Nari"}, "author": {"Jiwoo"}})
	status, body := ts.get(t, "/api/candidates")
	require.Equal(t, http.StatusOK, status)

	var candidates []struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Author string  `json:"author"`
		Reason *string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &candidates))
	id := candidates[len(candidates)-1].ID

	resp := ts.postForm(t, "/candidates/"+id, url.Values{"name": {"Narae"}, "author": {"Jiwoo"}, "reason": {"wings"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/candidates", resp.Header.Get("Location"))

	_, body = ts.get(t, "/api/candidates")
	require.NoError(t, json.Unmarshal([]byte(body), &candidates))
	updated := candidates[len(candidates)-1]
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Narae", updated.Name)
	require.NotNil(t, updated.Reason)
	assert.Equal(t, "wings", *updated.Reason)

	_, body = ts.get(t, "/candidates")
	assert.Contains(t, body, `action="/candidates/`+id+`"`)

	resp = ts.postForm(t, "/candidates/"+id, url.Values{"name": {""}, "author": {"Jiwoo"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = ts.get(t, "/candidates")
	assert.Contains(t, body, "name is required")

	resp = ts.postForm(t, "/candidates/missing", url.Values{"name": {"X"}, "author": {"Y"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = ts.get(t, "/candidates")
	assert.Contains(t, body, "candidate not found")
}
