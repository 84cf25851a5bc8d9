package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dario2994/code-contest-bot/internal/config"
	"github.com/dario2994/code-contest-bot/internal/contest"
	"github.com/dario2994/code-contest-bot/internal/server"
	"github.com/dario2994/code-contest-bot/internal/sheets"
	"github.com/dario2994/code-contest-bot/internal/store"
	"github.com/dario2994/code-contest-bot/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	st, err := store.New(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	state, err := st.Load()
	if err != nil {
		log.Fatalf("load snapshot: %v", err)
	}
	log.Printf("snapshot loaded: %d admins, %d contestants, %d problems",
		len(state.Admins), len(state.Contestants), len(state.Problems))

	svc := contest.NewService(state, st, cfg.CheckAdminPassword)

	var mirror *sheets.Mirror
	if cfg.MirrorEnabled() {
		mirror, err = sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("sheets: %v", err)
		}
		log.Printf("ranking mirror enabled (spreadsheet %s)", cfg.SpreadsheetID)
	}

	botApp, err := tgbot.New(cfg, svc, mirror)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}

	httpSrv := server.New(cfg, svc)

	// Start HTTP server
	go func() {
		log.Printf("HTTP listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Start Telegram
	ctx, cancel := context.WithCancel(context.Background())
	botErr := make(chan error, 1)
	go func() {
		botErr <- botApp.Run(ctx)
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case s := <-sig:
		log.Printf("received %v, shutting down...", s)
	case err := <-botErr:
		// The bot loop only fails on a persistence error; the state on disk
		// is still the last consistent snapshot, so stop rather than keep
		// accepting commands that cannot be saved.
		if err != nil && err != context.Canceled {
			log.Printf("bot stopped: %v", err)
			exitCode = 1
		}
	}

	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = httpSrv.Shutdown(ctxTimeout)

	log.Println("bye")
	os.Exit(exitCode)
}
