// Package config provides environment-backed configuration for userhub.
// Values come from process environment variables, optionally loaded from a
// .env file at startup.
package config

import (
	_ "embed"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// LoadEnvFile loads variables from the given .env file into the process
// environment. A missing file is not an error; explicit environment wins.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("USERHUB_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return getBool("USERHUB_DEBUG", false)
}

func GetListen() string {
	return os.Getenv("USERHUB_LISTEN")
}

func GetPort() int {
	return getInt("USERHUB_PORT", 8000)
}

// GetBasePath returns the URL prefix all routes are mounted under.
// Always begins and ends with "/".
func GetBasePath() string {
	basePath := os.Getenv("USERHUB_BASE_PATH")
	if basePath == "" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("USERHUB_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/userhub"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("USERHUB_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

// GetRedisAddr returns the external redis address for session storage.
// Empty means an embedded in-process redis is started instead.
func GetRedisAddr() string {
	return os.Getenv("USERHUB_REDIS_ADDR")
}

// GetSessionMaxAge returns the session lifetime in seconds. Sessions use a
// fixed TTL from creation, no sliding renewal.
func GetSessionMaxAge() int {
	return getInt("USERHUB_SESSION_MAX_AGE", 86400)
}

func GetSessionCookieName() string {
	cookieName := os.Getenv("USERHUB_SESSION_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "userhub_session"
	}
	return cookieName
}

func GetSessionCookieSecure() bool {
	return getBool("USERHUB_SESSION_COOKIE_SECURE", false)
}

func GetSessionCookieSameSite() http.SameSite {
	switch strings.ToLower(os.Getenv("USERHUB_SESSION_COOKIE_SAMESITE")) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// GetSessionSecret returns the key used to sign session cookies.
func GetSessionSecret() string {
	return os.Getenv("USERHUB_SECRET")
}

// GetCORSAllowedOrigins returns the explicit origin allow-list. Credentialed
// CORS forbids a wildcard, so an empty list disables cross-origin access.
func GetCORSAllowedOrigins() []string {
	raw := os.Getenv("USERHUB_CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// GetTwoFactorSecret returns the TOTP secret for the optional second factor
// on login. Empty disables two-factor entirely.
func GetTwoFactorSecret() string {
	return os.Getenv("USERHUB_TWO_FACTOR_SECRET")
}

// GetLoginRateLimit returns the allowed login attempts per client IP per minute.
func GetLoginRateLimit() int {
	return getInt("USERHUB_LOGIN_RATE_LIMIT", 10)
}

func GetAuditRetentionDays() int {
	return getInt("USERHUB_AUDIT_RETENTION_DAYS", 90)
}

func getBool(key string, def bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
