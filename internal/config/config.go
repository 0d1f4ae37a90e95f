// Package config loads application configuration from environment
// variables. A .env file, when present, is loaded by the entry point
// before Load runs.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration. Token validities are
// configured in milliseconds; the pepper and JWT secret are
// deployment-wide secrets that never reach storage or logs.
type Config struct {
	Env             string        // application environment (dev/test/prod)
	Port            string        // HTTP port to listen on
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host
	DBPort          string        // database port
	DBName          string        // database name
	JWTSecret       string        // symmetric key for token signing
	AccessTokenTTL  time.Duration // access token validity
	RefreshTokenTTL time.Duration // refresh token validity
	PasswordPepper  string        // server-side secret appended before hashing
	BcryptCost      int           // bcrypt cost factor
	CORSOrigins     []string      // origins allowed to receive the session cookie
	CookieSecure    bool          // Secure flag on the session cookie
}

// Load reads configuration from the environment. Missing required
// variables abort startup with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTokenTTL:  time.Duration(mustInt("ACCESS_TOKEN_TTL_MS")) * time.Millisecond,
		RefreshTokenTTL: time.Duration(mustInt("REFRESH_TOKEN_TTL_MS")) * time.Millisecond,
		PasswordPepper:  must("PASSWORD_PEPPER"),
		BcryptCost:      mustInt("BCRYPT_COST"),
		CORSOrigins:     splitOrigins(getenv("CORS_ORIGINS", "http://localhost:5173")),
		CookieSecure:    getenv("COOKIE_SECURE", "false") == "true",
	}
}

func splitOrigins(s string) []string {
	out := []string{}
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
