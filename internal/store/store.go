// Package store persists the contest state as a single snapshot blob,
// replaced wholesale on every save. Two backends exist: a local file
// (default) and a Redis key; both guarantee a loader never observes a
// half-written snapshot.
package store

import (
	"fmt"

	"github.com/dario2994/code-contest-bot/internal/config"
	"github.com/dario2994/code-contest-bot/internal/contest"
)

type Store interface {
	// Save replaces the previous snapshot atomically.
	Save(state *contest.State) error
	// Load returns the last saved snapshot, or a fresh empty state if no
	// snapshot exists yet.
	Load() (*contest.State, error)
}

// New selects the backend from configuration.
func New(cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "file":
		return NewFileStore(cfg.SnapshotFile), nil
	case "redis":
		return NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}
