package config // package config loads application configuration from environment variables

import (
	"errors"
	"fmt"
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env  string // application environment (e.g. "dev", "prod")
	Port string // HTTP port to listen on

	UserJWTSecret  string        // signs user tokens
	AdminJWTSecret string        // signs admin tokens; never equal to the user secret
	UserTokenTTL   time.Duration // 24h unless overridden
	AdminTokenTTL  time.Duration // 1h unless overridden
	BcryptCost     int           // bcrypt cost for password hashing

	AdminUsername     string
	AdminPassword     string // plaintext, hashed once at startup
	AdminPasswordHash string // bcrypt hash, preferred over AdminPassword

	StoreDriver string // memory, mysql or sqlite
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	SQLitePath  string

	PublicDir string // static front-end files, empty disables
	LogLevel  string
	LogFormat string
}

// Load reads a .env file when present, then builds a Config from the
// environment. Missing or inconsistent required values cause the program to
// exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load()
	cfg, err := Parse(os.LookupEnv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Parse builds a Config using lookup as the variable source.
func Parse(lookup func(string) (string, bool)) (Config, error) {
	e := env{lookup: lookup}
	cfg := Config{
		Env:  e.str("APP_ENV", "dev"),
		Port: e.str("APP_PORT", "8080"),

		UserJWTSecret:  e.must("USER_JWT_SECRET"),
		AdminJWTSecret: e.must("ADMIN_JWT_SECRET"),
		UserTokenTTL:   e.duration("USER_TOKEN_TTL", 24*time.Hour),
		AdminTokenTTL:  e.duration("ADMIN_TOKEN_TTL", time.Hour),
		BcryptCost:     e.integer("BCRYPT_COST", 10),

		AdminUsername:     e.str("ADMIN_USERNAME", "admin"),
		AdminPassword:     e.str("ADMIN_PASSWORD", ""),
		AdminPasswordHash: e.str("ADMIN_PASSWORD_HASH", ""),

		StoreDriver: strings.ToLower(e.str("STORE_DRIVER", DriverMemory)),
		SQLitePath:  e.str("SQLITE_PATH", "gallery.db"),

		PublicDir: e.str("PUBLIC_DIR", "public"),
		LogLevel:  e.str("LOG_LEVEL", "info"),
		LogFormat: e.str("LOG_FORMAT", "json"),
	}

	if cfg.StoreDriver == DriverMySQL {
		cfg.DBUser = e.must("DB_USER")
		cfg.DBPass = e.str("DB_PASS", "") // empty allowed
		cfg.DBHost = e.must("DB_HOST")
		cfg.DBPort = e.must("DB_PORT")
		cfg.DBName = e.must("DB_NAME")
	}

	if e.err != nil {
		return Config{}, e.err
	}
	switch cfg.StoreDriver {
	case DriverMemory, DriverMySQL, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.UserJWTSecret == cfg.AdminJWTSecret {
		return Config{}, errors.New("USER_JWT_SECRET and ADMIN_JWT_SECRET must differ")
	}
	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return Config{}, errors.New("one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if cfg.UserTokenTTL <= 0 || cfg.AdminTokenTTL <= 0 {
		return Config{}, errors.New("token TTLs must be positive")
	}
	return cfg, nil
}

// env wraps a lookup function and remembers the first missing required key.
type env struct {
	lookup func(string) (string, bool)
	err    error
}

// must retrieves the value of a required variable. An unset or empty
// variable is recorded as the parse error.
func (e *env) must(key string) string {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		if e.err == nil {
			e.err = fmt.Errorf("missing required env var: %s", key)
		}
		return ""
	}
	return v
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

// integer and duration keep the default when the value does not parse.
func (e *env) integer(key string, def int) int {
	if n, err := strconv.Atoi(e.str(key, "")); err == nil {
		return n
	}
	return def
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(e.str(key, "")); err == nil {
		return d
	}
	return def
}
