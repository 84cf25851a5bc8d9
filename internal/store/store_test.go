package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dario2994/code-contest-bot/internal/config"
)

func TestNewSelectsBackend(t *testing.T) {
	fileCfg := config.Config{StoreBackend: "file", SnapshotFile: "contest.json"}
	st, err := New(fileCfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, st)

	redisCfg := config.Config{
		StoreBackend: "redis",
		RedisAddr:    "localhost:6379",
		RedisKey:     "codecontest:state",
	}
	st, err = New(redisCfg)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, st)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(config.Config{StoreBackend: "sheets"})
	assert.Error(t, err)
}
