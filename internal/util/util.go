package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

func NowISO() string {
	return time.Now().Format(time.RFC3339)
}

// FormatClock renders a wall-clock time the way problem deadlines are
// announced to contestants.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
