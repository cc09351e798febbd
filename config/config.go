package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	StoreBackend string        `env:"STORE_BACKEND" envDefault:"postgres"` // postgres | memory
	DatabaseURL  string        `env:"DATABASE_URL"`                        // required when STORE_BACKEND=postgres
	AutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	SlowQuery    time.Duration `env:"DB_SLOW_QUERY" envDefault:"1s"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxIdle  time.Duration `env:"DB_CONN_MAX_IDLE" envDefault:"5m"`

	SupabaseJWTSecret   string        `env:"SUPABASE_JWT_SECRET,required"`
	SessionCookie       string        `env:"SESSION_COOKIE" envDefault:"sb-access-token"`
	ImpersonationSecret string        `env:"IMPERSONATION_SECRET,required"`
	ImpersonationTTL    time.Duration `env:"IMPERSONATION_TTL" envDefault:"1h"`
	CookieSecure        bool          `env:"COOKIE_SECURE" envDefault:"true"`
	SuperAdminEmails    []string      `env:"SUPER_ADMIN_EMAILS" envSeparator:","`

	CorsOrigins   string `env:"CORS_ORIGINS" envDefault:"*"`
	HotelTimezone string `env:"HOTEL_TIMEZONE" envDefault:"UTC"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.ImpersonationTTL <= 0 {
		errs = append(errs, errors.New("IMPERSONATION_TTL must be positive"))
	}
	if _, err := time.LoadLocation(c.HotelTimezone); err != nil {
		errs = append(errs, fmt.Errorf("HOTEL_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Location is the hotel calendar; Validate has already checked it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.HotelTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
