package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:token")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequiredEnv(t)

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "file", c.StoreBackend)
	assert.Equal(t, "contest.json", c.SnapshotFile)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, "codecontest:state", c.RedisKey)
	assert.False(t, c.MirrorEnabled())
}

func TestFromEnvRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("ADMIN_PASSWORD", "hunter2")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvRequiresCredential(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:token")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_BCRYPT", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvMirrorNeedsServiceAccount(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")

	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "sa.json")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, c.MirrorEnabled())
}

func TestCheckAdminPasswordPlain(t *testing.T) {
	c := Config{AdminPassword: "hunter2"}
	assert.True(t, c.CheckAdminPassword("hunter2"))
	assert.False(t, c.CheckAdminPassword("Hunter2"))
	assert.False(t, c.CheckAdminPassword(""))
}

func TestCheckAdminPasswordBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	c := Config{AdminPasswordBcrypt: string(hash)}
	assert.True(t, c.CheckAdminPassword("hunter2"))
	assert.False(t, c.CheckAdminPassword("nope"))

	// the hash takes precedence over a plain password
	c.AdminPassword = "other"
	assert.True(t, c.CheckAdminPassword("hunter2"))
	assert.False(t, c.CheckAdminPassword("other"))
}
