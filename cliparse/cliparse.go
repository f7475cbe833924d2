package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/pint-index/models"
)

// Storage backends
const (
	DatabaseSQLite    = "sqlite"
	DatabasePostgres  = "postgres"
	DatabaseFirestore = "firestore"
	DatabaseMemory    = "memory"
)

const (
	DefaultPort           = 3318
	DefaultCurrency       = "£"
	DefaultRequestTimeout = 10 * time.Second
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	FirestoreProject string
	AdminKeySalt     string
	PriceModel       string
	Currency         string
	RequestTimeout   time.Duration
	LogLevel         string
	LogFormat        string
	TraceStdout      bool
	PrintAdminKey    bool
}

// AdminEnabled reports whether admin routes accept requests.
func (c Config) AdminEnabled() bool {
	return c.AdminKeySalt != ""
}

// SlogLevel returns LogLevel as a slog level, info when unset.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LoadDotEnv loads variables from an env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads flags, falls back to environment variables and validates
// the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var timeout string

	fs := flag.NewFlagSet("pint-index", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite file")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, firestore or memory)")
	fs.StringVar(&cfg.FirestoreProject, "firestore-project", "", "Firestore project ID")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the admin key and exit")

	// Behaviour
	fs.StringVar(&cfg.PriceModel, "price-model", "", "Price model (active or ledger)")
	fs.StringVar(&cfg.Currency, "currency", "", "Currency symbol for rendered prices")
	fs.StringVar(&timeout, "timeout", "", "Per-request storage timeout (e.g. 10s)")

	// Observability
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.BoolVar(&cfg.TraceStdout, "trace", false, "Export traces to stdout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	cfg.DatabaseType = fallback(cfg.DatabaseType, "DATABASE_TYPE", DatabaseSQLite)
	cfg.DatabaseURL = fallback(cfg.DatabaseURL, "DATABASE_URL", "")
	cfg.FirestoreProject = fallback(cfg.FirestoreProject, "FIRESTORE_PROJECT_ID", "")
	cfg.AdminKeySalt = fallback(cfg.AdminKeySalt, "ADMIN_KEY_SALT", "")
	cfg.PriceModel = fallback(cfg.PriceModel, "PRICE_MODEL", models.PriceModelActive)
	cfg.Currency = fallback(cfg.Currency, "CURRENCY_SYMBOL", DefaultCurrency)
	cfg.LogLevel = fallback(cfg.LogLevel, "LOG_LEVEL", "info")
	cfg.LogFormat = fallback(cfg.LogFormat, "LOG_FORMAT", "text")

	if !cfg.TraceStdout {
		if v := os.Getenv("TRACE_STDOUT"); v != "" {
			on, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TRACE_STDOUT env variable")
			}
			cfg.TraceStdout = on
		}
	}

	timeout = fallback(timeout, "REQUEST_TIMEOUT", "")
	cfg.RequestTimeout = DefaultRequestTimeout
	if timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid request timeout %q", timeout)
		}
		cfg.RequestTimeout = d
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	switch c.DatabaseType {
	case DatabaseSQLite, DatabasePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case DatabaseFirestore:
		if c.FirestoreProject == "" {
			return errors.New("firestore project required (use -firestore-project or FIRESTORE_PROJECT_ID env)")
		}
	case DatabaseMemory:
	default:
		return fmt.Errorf("unknown database type %q", c.DatabaseType)
	}

	switch c.PriceModel {
	case models.PriceModelActive, models.PriceModelLedger:
	default:
		return fmt.Errorf("unknown price model %q (want active or ledger)", c.PriceModel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if c.PrintAdminKey && c.AdminKeySalt == "" {
		return errors.New("ADMIN_KEY_SALT required to print the admin key")
	}
	return nil
}

// fallback returns v, else the environment variable, else def.
func fallback(v, env, def string) string {
	if v != "" {
		return v
	}
	if e := os.Getenv(env); e != "" {
		return e
	}
	return def
}
