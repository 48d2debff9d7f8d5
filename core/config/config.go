package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// RateLimitConfig holds settings for rate limiting.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
// - "inline_query": inline query updates
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// RedisConfig holds Redis connection settings. Empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
	PoolSize int    `yaml:"pool_size" envconfig:"REDIS_POOL_SIZE"`
}

// StorageConfig selects backends for wizard sessions and the order journal.
type StorageConfig struct {
	Sessions   string        `yaml:"sessions" envconfig:"STORAGE_SESSIONS"`
	Orders     string        `yaml:"orders" envconfig:"STORAGE_ORDERS"`
	SessionTTL time.Duration `yaml:"session_ttl" envconfig:"STORAGE_SESSION_TTL"`
}

// PricesConfig configures the CoinGecko price source.
type PricesConfig struct {
	Endpoint string        `yaml:"endpoint" envconfig:"PRICES_ENDPOINT"`
	APIKey   string        `yaml:"api_key" envconfig:"COINGECKO_API_KEY"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"PRICES_TIMEOUT"`
	Retries  int           `yaml:"retries" envconfig:"PRICES_RETRIES"`
	CacheTTL time.Duration `yaml:"cache_ttl" envconfig:"PRICES_CACHE_TTL"`
	Timezone string        `yaml:"timezone" envconfig:"PRICES_TIMEZONE"`
}

// SwapConfig tunes the swap wizard behaviour.
type SwapConfig struct {
	// StrictQuotes keeps the user on the amount step when the rate lookup fails.
	StrictQuotes     bool              `yaml:"strict_quotes" envconfig:"SWAP_STRICT_QUOTES"`
	DepositTTL       time.Duration     `yaml:"deposit_ttl" envconfig:"SWAP_DEPOSIT_TTL"`
	DepositAddresses map[string]string `yaml:"deposit_addresses"`
}

// OpsConfig configures the operational HTTP endpoint. Empty Listen disables it.
type OpsConfig struct {
	Listen string `yaml:"listen" envconfig:"OPS_LISTEN"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
	// UpdateInlineQuery identifies inline query updates for rate limit exclusions.
	UpdateInlineQuery = "inline_query"
)

const (
	// BackendMemory keeps data in process memory.
	BackendMemory = "memory"
	// BackendRedis stores data in Redis.
	BackendRedis = "redis"
	// BackendPostgres stores data in Postgres.
	BackendPostgres = "postgres"
)

const (
	defaultPricesEndpoint = "https://api.coingecko.com/api/v3/simple/price"
	defaultPricesTimeout  = 5 * time.Second
	defaultTimezone       = "Africa/Nairobi"
	defaultDepositTTL     = 30 * time.Minute
	defaultSessionTTL     = 24 * time.Hour
)

// Config aggregates the bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Prices    PricesConfig    `yaml:"prices"`
	Swap      SwapConfig      `yaml:"swap"`
	Ops       OpsConfig       `yaml:"ops"`
}

// Load reads configuration from a YAML file and environment variables.
// A missing file is tolerated so the bot can run from environment alone.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadOffline is Load for tools that never talk to Telegram, such as the
// migrate and prices commands. The bot token is not required.
func LoadOffline(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, requireTelegram bool) (*Config, error) {
	var cfg Config

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := normalize(&cfg, requireTelegram); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	return normalize(cfg, true)
}

func normalize(cfg *Config, requireTelegram bool) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if requireTelegram && cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	allowed := map[string]struct{}{
		UpdateCallback:    {},
		UpdateMessage:     {},
		UpdateInlineQuery: {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message, inline_query", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}

	if err := normalizeStorage(cfg); err != nil {
		return err
	}
	normalizePrices(&cfg.Prices)

	if cfg.Swap.DepositTTL <= 0 {
		cfg.Swap.DepositTTL = defaultDepositTTL
	}
	return nil
}

func normalizeStorage(cfg *Config) error {
	s := &cfg.Storage
	s.Sessions = strings.ToLower(strings.TrimSpace(s.Sessions))
	if s.Sessions == "" {
		s.Sessions = BackendMemory
	}
	s.Orders = strings.ToLower(strings.TrimSpace(s.Orders))
	if s.Orders == "" {
		s.Orders = BackendMemory
	}
	if s.SessionTTL <= 0 {
		s.SessionTTL = defaultSessionTTL
	}

	switch s.Sessions {
	case BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(cfg.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is required when storage.sessions is 'redis'")
		}
	case BackendPostgres:
		if err := requireDatabase(cfg.Database, "storage.sessions"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid storage.sessions %q; allowed: memory, redis, postgres", s.Sessions)
	}

	switch s.Orders {
	case BackendMemory:
	case BackendPostgres:
		if err := requireDatabase(cfg.Database, "storage.orders"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid storage.orders %q; allowed: memory, postgres", s.Orders)
	}

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 5
	}
	return nil
}

func requireDatabase(db DatabaseConfig, field string) error {
	if strings.TrimSpace(db.Host) == "" || strings.TrimSpace(db.Name) == "" {
		return fmt.Errorf("database.host and database.name are required when %s is 'postgres'", field)
	}
	return nil
}

func normalizePrices(p *PricesConfig) {
	if strings.TrimSpace(p.Endpoint) == "" {
		p.Endpoint = defaultPricesEndpoint
	}
	if p.Timeout <= 0 {
		p.Timeout = defaultPricesTimeout
	}
	if p.Retries < 0 {
		p.Retries = 0
	}
	if p.CacheTTL < 0 {
		p.CacheTTL = 0
	}
	if strings.TrimSpace(p.Timezone) == "" {
		p.Timezone = defaultTimezone
	}
}

// UsesPostgres reports whether any storage backend needs a database connection.
func (c *Config) UsesPostgres() bool {
	return c.Storage.Sessions == BackendPostgres || c.Storage.Orders == BackendPostgres
}

// UsesRedis reports whether a Redis client should be created.
func (c *Config) UsesRedis() bool {
	if strings.TrimSpace(c.Redis.Addr) == "" {
		return false
	}
	return c.Storage.Sessions == BackendRedis || c.Prices.CacheTTL > 0
}
