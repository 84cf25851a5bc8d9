package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dario2994/code-contest-bot/internal/config"
	"github.com/dario2994/code-contest-bot/internal/contest"
	"github.com/dario2994/code-contest-bot/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	state := contest.NewState()
	state.Contestants = []contest.User{{Name: "C1", ChatID: 1}}
	state.Problems = []contest.Problem{{Name: "P1", T1: 10, T2: 20}}
	state.CurrentProblem = "P1"
	state.Scores = []contest.ScoreEntry{{Contestant: "C1", Problem: "P1", Score: 100}}

	fs := store.NewFileStore(filepath.Join(t.TempDir(), "contest.json"))
	svc := contest.NewService(state, fs, func(string) bool { return false })

	cfg := config.Config{HTTPAddr: ":0", ExportSecret: "s3cret"}
	srv := httptest.NewServer(New(cfg, svc).Handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
}

func TestExportRankingCSV(t *testing.T) {
	srv := newTestServer(t)
	token := ExportTokenFor("s3cret")

	resp, err := http.Get(srv.URL + "/export/ranking.csv?token=" + token)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Contestant,P1,Total")
	assert.Contains(t, string(body), "C1,100,100")
}

func TestExportRankingCSVRejectsBadToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/export/ranking.csv?token=wrong")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/export/ranking.csv")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
