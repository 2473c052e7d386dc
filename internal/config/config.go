package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"server"`
	Database struct {
		Driver       string        `yaml:"driver"`
		SQLitePath   string        `yaml:"sqlite_path"`
		PostgresDSN  string        `yaml:"postgres_dsn"`
		QueryTimeout time.Duration `yaml:"query_timeout"`
	} `yaml:"database"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TickerTTL     time.Duration `yaml:"ticker_ttl"`
	} `yaml:"cache"`
	Ingest struct {
		Tickers    []string          `yaml:"tickers"`
		SymbolMap  map[string]string `yaml:"symbol_map"` // stored ticker -> Yahoo symbol
		DailyCron  string            `yaml:"daily_cron"`
		CacheCron  string            `yaml:"cache_cron"`
		Range      string            `yaml:"range"`
		Proxy      string            `yaml:"proxy"`
		RunOnStart bool              `yaml:"run_on_start"`
	} `yaml:"ingest"`
}

// envOverrides lists the environment variables that replace file values.
// Unset variables leave their pointer nil.
type envOverrides struct {
	ServerAddr    *string        `envconfig:"SERVER_ADDR"`
	DBDriver      *string        `envconfig:"DB_DRIVER"`
	SQLitePath    *string        `envconfig:"SQLITE_PATH"`
	PostgresDSN   *string        `envconfig:"POSTGRES_DSN"`
	QueryTimeout  *time.Duration `envconfig:"QUERY_TIMEOUT"`
	RedisAddr     *string        `envconfig:"REDIS_ADDR"`
	RedisPassword *string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       *int           `envconfig:"REDIS_DB"`
	Tickers       *[]string      `envconfig:"TICKERS"`
	DailyCron     *string        `envconfig:"CRON_DAILY"`
	Proxy         *string        `envconfig:"HTTPS_PROXY"`
	RunOnStart    *bool          `envconfig:"RUN_ON_START"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is fine.
	_ = godotenv.Load()

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	env.apply(cfg)

	cfg.applyDefaults()
	return cfg, nil
}

func (e *envOverrides) apply(cfg *Config) {
	if e.ServerAddr != nil {
		cfg.Server.Addr = *e.ServerAddr
	}
	if e.DBDriver != nil {
		cfg.Database.Driver = *e.DBDriver
	}
	if e.SQLitePath != nil {
		cfg.Database.SQLitePath = *e.SQLitePath
	}
	if e.PostgresDSN != nil {
		cfg.Database.PostgresDSN = *e.PostgresDSN
	}
	if e.QueryTimeout != nil {
		cfg.Database.QueryTimeout = *e.QueryTimeout
	}
	if e.RedisAddr != nil {
		cfg.Cache.RedisAddr = *e.RedisAddr
	}
	if e.RedisPassword != nil {
		cfg.Cache.RedisPassword = *e.RedisPassword
	}
	if e.RedisDB != nil {
		cfg.Cache.RedisDB = *e.RedisDB
	}
	if e.Tickers != nil {
		cfg.Ingest.Tickers = *e.Tickers
	}
	if e.DailyCron != nil {
		cfg.Ingest.DailyCron = *e.DailyCron
	}
	if e.Proxy != nil {
		cfg.Ingest.Proxy = *e.Proxy
	}
	if e.RunOnStart != nil {
		cfg.Ingest.RunOnStart = *e.RunOnStart
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/coin_data.db"
	}
	if c.Database.QueryTimeout == 0 {
		c.Database.QueryTimeout = 10 * time.Second
	}
	if c.Cache.TickerTTL == 0 {
		c.Cache.TickerTTL = time.Hour
	}
	if len(c.Ingest.Tickers) == 0 {
		c.Ingest.Tickers = []string{"BTC", "ETH"}
	}
	if c.Ingest.DailyCron == "" {
		c.Ingest.DailyCron = "0 30 0 * * *"
	}
	if c.Ingest.CacheCron == "" {
		c.Ingest.CacheCron = "0 */15 * * * *"
	}
	if c.Ingest.Range == "" {
		c.Ingest.Range = "5y"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for sqlite")
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("database.postgres_dsn is required for postgres")
		}
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.QueryTimeout < 0 {
		return fmt.Errorf("database.query_timeout must not be negative")
	}
	if c.Cache.RedisAddr != "" && c.Cache.TickerTTL <= 0 {
		return fmt.Errorf("cache.ticker_ttl must be positive")
	}
	for _, t := range c.Ingest.Tickers {
		if t == "" {
			return fmt.Errorf("ingest.tickers must not contain empty entries")
		}
	}
	for ticker, symbol := range c.Ingest.SymbolMap {
		if symbol == "" {
			return fmt.Errorf("ingest.symbol_map.%s must not be empty", ticker)
		}
	}
	return nil
}
