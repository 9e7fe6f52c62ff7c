package httputil

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/service"
)

func TestFail(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &service.ValidationError{Message: "bad count"}, http.StatusBadRequest},
		{"precondition", fmt.Errorf("%w: winner is not part of this match", bracket.ErrPrecondition), http.StatusBadRequest},
		{"no tournament", service.ErrNoTournament, http.StatusNotFound},
		{"unknown candidate", fmt.Errorf("%w: abc", service.ErrCandidateNotFound), http.StatusNotFound},
		{"anything else", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, "failed", tc.err)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "disk on fire")
			}
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"score": 64})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"score":64}`, rec.Body.String())
}

func TestHelpersLogStatusAndLevel(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	rec := httptest.NewRecorder()
	InternalServerError(rec, "Failed to load tournament", errors.New("disk on fire"))
	assert.Equal(t, "Internal Server Error\n", rec.Body.String())
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "status=500")
	assert.Contains(t, buf.String(), `error="disk on fire"`)

	buf.Reset()
	rec = httptest.NewRecorder()
	BadRequest(rec, "Missing winner", nil)
	assert.Equal(t, "Missing winner\n", rec.Body.String())
	assert.Contains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "error=")
}
