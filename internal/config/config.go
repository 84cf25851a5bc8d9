package config

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	TelegramToken string

	// Exactly one of these authorizes /i_am_admin. The bcrypt variant is
	// preferred so the shared password never sits in the environment in
	// clear text.
	AdminPassword       string
	AdminPasswordBcrypt string

	StoreBackend string // "file" or "redis"
	SnapshotFile string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	HTTPAddr      string
	BasePublicURL string
	ExportSecret  string

	// Optional ranking mirror to a Google Sheet; both must be set.
	SpreadsheetID            string
	GoogleServiceAccountJSON string
}

func FromEnv() (Config, error) {
	var c Config
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	c.AdminPasswordBcrypt = strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_BCRYPT"))

	c.StoreBackend = strings.TrimSpace(os.Getenv("STORE_BACKEND"))
	if c.StoreBackend == "" {
		c.StoreBackend = "file"
	}
	c.SnapshotFile = strings.TrimSpace(os.Getenv("SNAPSHOT_FILE"))
	if c.SnapshotFile == "" {
		c.SnapshotFile = "contest.json"
	}

	c.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	c.RedisDB = parseIntEnv("REDIS_DB", 0)
	c.RedisKey = strings.TrimSpace(os.Getenv("REDIS_KEY"))
	if c.RedisKey == "" {
		c.RedisKey = "codecontest:state"
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	c.BasePublicURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BASE_PUBLIC_URL")), "/")
	c.ExportSecret = strings.TrimSpace(os.Getenv("EXPORT_SECRET"))
	if c.ExportSecret == "" {
		c.ExportSecret = "change-me"
	}

	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	if c.TelegramToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
	}
	if c.AdminPassword == "" && c.AdminPasswordBcrypt == "" {
		return c, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_BCRYPT must be set")
	}
	if c.SpreadsheetID != "" && c.GoogleServiceAccountJSON == "" {
		return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is required when GOOGLE_SHEETS_SPREADSHEET_ID is set")
	}

	return c, nil
}

// CheckAdminPassword reports whether an /i_am_admin attempt matches the
// configured credential.
func (c Config) CheckAdminPassword(attempt string) bool {
	if c.AdminPasswordBcrypt != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.AdminPasswordBcrypt), []byte(attempt)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(c.AdminPassword), []byte(attempt)) == 1
}

// MirrorEnabled reports whether the Google Sheets ranking mirror is
// configured.
func (c Config) MirrorEnabled() bool {
	return c.SpreadsheetID != ""
}

func parseIntEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
