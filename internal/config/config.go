package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/adapters/cache"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

var (
	ErrUnknownDriver = errors.New("unknown ledger driver")
	ErrMissingSecret = errors.New("JWT_SECRET is required")
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type Config struct {
	Port         string
	LedgerDriver string
	LedgerFile   string
	SQLitePath   string
	DB           DBConfig
	Redis        cache.Config
	JWT          JWTConfig
	RateLimit    RateLimitConfig
}

// NewViper returns a viper instance reading the environment, with defaults for
// every key the service understands.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("ledger_driver", DriverFile)
	v.SetDefault("ledger_file", "habits_data.json")
	v.SetDefault("sqlite_path", "habits.db")

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("redis_host", "")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_issuer", "kanso-habits")
	v.SetDefault("jwt_ttl", 24*time.Hour)

	v.SetDefault("rate_limit", 100)
	v.SetDefault("rate_window", time.Minute)

	v.AutomaticEnv()
	return v
}

// Load reads the optional .env files into the environment, then resolves the
// configuration from it. Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfg := FromViper(NewViper())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func FromViper(v *viper.Viper) *Config {
	return &Config{
		Port:         v.GetString("port"),
		LedgerDriver: v.GetString("ledger_driver"),
		LedgerFile:   v.GetString("ledger_file"),
		SQLitePath:   v.GetString("sqlite_path"),
		DB: DBConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Redis: cache.Config{
			Host:     v.GetString("redis_host"),
			Port:     v.GetString("redis_port"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			Issuer: v.GetString("jwt_issuer"),
			TTL:    v.GetDuration("jwt_ttl"),
		},
		RateLimit: RateLimitConfig{
			Limit:  v.GetInt("rate_limit"),
			Window: v.GetDuration("rate_window"),
		},
	}
}

func (c *Config) Validate() error {
	switch c.LedgerDriver {
	case DriverMemory, DriverFile, DriverPgx, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.LedgerDriver)
	}
	if c.JWT.Secret == "" {
		return ErrMissingSecret
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWT.TTL)
	}
	return nil
}

// UsesSQL reports whether the ledger lives in a database reached through sqlx.
func (c *Config) UsesSQL() bool {
	switch c.LedgerDriver {
	case DriverPgx, DriverPostgres, DriverSQLite:
		return true
	}
	return false
}

// DSN is the data source name handed to the sql driver.
func (c *Config) DSN() string {
	if c.LedgerDriver == DriverSQLite {
		return c.SQLitePath
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": {c.DB.SSLMode}}.Encode(),
	}
	return u.String()
}
