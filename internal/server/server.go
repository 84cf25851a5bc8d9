package server

import (
	"crypto/hmac"
	"encoding/json"
	"net/http"

	"github.com/dario2994/code-contest-bot/internal/config"
	"github.com/dario2994/code-contest-bot/internal/contest"
	"github.com/dario2994/code-contest-bot/internal/util"
)

// ExportTokenFor returns the token guarding the ranking CSV export link.
func ExportTokenFor(secret string) string {
	return util.HMACSHA256Hex(secret, "export:ranking")
}

func New(cfg config.Config, svc *contest.Service) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"ts": util.NowISO(),
		})
	})

	// CSV export (admin-only link with token = HMAC)
	mux.HandleFunc("/export/ranking.csv", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "token required", http.StatusBadRequest)
			return
		}
		expected := ExportTokenFor(cfg.ExportSecret)
		if !hmac.Equal([]byte(token), []byte(expected)) {
			http.Error(w, "invalid token", http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="ranking.csv"`)
		_, _ = w.Write([]byte(svc.ExportCSV()))
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}
