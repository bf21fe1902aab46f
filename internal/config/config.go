package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Provider configuration
	Providers ProviderConfig `mapstructure:"providers"`

	// Scoring policy
	Scoring ScoringConfig `mapstructure:"scoring"`

	// Storage configuration
	Storage StorageConfig `mapstructure:"storage"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`

	// Metrics configuration
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ProviderConfig holds external SEO data source configuration
type ProviderConfig struct {
	PageSpeed         EndpointConfig `mapstructure:"pagespeed"`
	Backlinks         EndpointConfig `mapstructure:"backlinks"`
	Keywords          EndpointConfig `mapstructure:"keywords"`
	UserAgent         string         `mapstructure:"user_agent"`
	Timeout           time.Duration  `mapstructure:"timeout"`
	RequestsPerSecond int            `mapstructure:"requests_per_second"`
}

// EndpointConfig holds a provider endpoint and API key
type EndpointConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

// ScoringConfig holds the policy constants behind the overall score.
// Defaults are load-bearing: changing them changes every report.
type ScoringConfig struct {
	Weights       WeightConfig   `mapstructure:"weights"`
	BacklinkTiers []BacklinkTier `mapstructure:"backlink_tiers"`
	Positions     PositionConfig `mapstructure:"positions"`
}

// WeightConfig holds the category weights for the overall score
type WeightConfig struct {
	Performance float64 `mapstructure:"performance"`
	Technical   float64 `mapstructure:"technical"`
	Content     float64 `mapstructure:"content"`
	Backlinks   float64 `mapstructure:"backlinks"`
	Social      float64 `mapstructure:"social"`
}

// Sum returns the total of all weights.
func (w WeightConfig) Sum() float64 {
	return w.Performance + w.Technical + w.Content + w.Backlinks + w.Social
}

// BacklinkTier maps a backlink count to a sub-score: a count strictly
// below Below earns Score. Tiers are evaluated in order; a tier with
// Below of 0 is the catch-all for every higher count.
type BacklinkTier struct {
	Below int `mapstructure:"below"`
	Score int `mapstructure:"score"`
}

// PositionConfig holds the market position label thresholds
type PositionConfig struct {
	Excellent int `mapstructure:"excellent"`
	Good      int `mapstructure:"good"`
	Average   int `mapstructure:"average"`
}

// StorageConfig holds persistence gateway configuration
type StorageConfig struct {
	Type          string        `mapstructure:"type"` // "memory" or "redis"
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisDB       int           `mapstructure:"redis_db"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "json" or "text"
	OutputPath string `mapstructure:"output_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Addr string `mapstructure:"addr"` // empty disables the endpoint
}

var (
	defaultConfig *Config
	configLoaded  bool
)

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	if configLoaded && defaultConfig != nil {
		return defaultConfig, nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.siteaudit")
	}

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvVars()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if len(config.Scoring.BacklinkTiers) == 0 {
		config.Scoring.BacklinkTiers = DefaultScoring().BacklinkTiers
	}

	// Override with environment variables
	loadFromEnv(&config)

	defaultConfig = &config
	configLoaded = true

	return &config, nil
}

// Default returns a Config populated purely from built-in defaults, with no
// file or environment lookups. Library callers and tests use this to get
// the fixed scoring policy.
func Default() *Config {
	return &Config{
		Providers: ProviderConfig{
			PageSpeed:         EndpointConfig{Endpoint: "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"},
			UserAgent:         "SiteAuditBot/1.0",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 5,
		},
		Scoring: DefaultScoring(),
		Storage: StorageConfig{
			Type:          "memory",
			RedisAddr:     "localhost:6379",
			RetryAttempts: 3,
			RetryBackoff:  200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// DefaultScoring returns the fixed scoring policy: category weights
// 30/25/20/15/10, the backlink volume tiers, and the market position
// thresholds.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		Weights: WeightConfig{
			Performance: 0.30,
			Technical:   0.25,
			Content:     0.20,
			Backlinks:   0.15,
			Social:      0.10,
		},
		BacklinkTiers: []BacklinkTier{
			{Below: 1, Score: 20},
			{Below: 100, Score: 40},
			{Below: 500, Score: 60},
			{Below: 1000, Score: 80},
			{Below: 0, Score: 95},
		},
		Positions: PositionConfig{
			Excellent: 85,
			Good:      75,
			Average:   65,
		},
	}
}

// setDefaults sets default configuration values
func setDefaults() {
	def := Default()

	// Provider defaults
	viper.SetDefault("providers.pagespeed.endpoint", def.Providers.PageSpeed.Endpoint)
	viper.SetDefault("providers.user_agent", def.Providers.UserAgent)
	viper.SetDefault("providers.timeout", "15s")
	viper.SetDefault("providers.requests_per_second", def.Providers.RequestsPerSecond)

	// Scoring defaults
	viper.SetDefault("scoring.weights.performance", def.Scoring.Weights.Performance)
	viper.SetDefault("scoring.weights.technical", def.Scoring.Weights.Technical)
	viper.SetDefault("scoring.weights.content", def.Scoring.Weights.Content)
	viper.SetDefault("scoring.weights.backlinks", def.Scoring.Weights.Backlinks)
	viper.SetDefault("scoring.weights.social", def.Scoring.Weights.Social)
	viper.SetDefault("scoring.positions.excellent", def.Scoring.Positions.Excellent)
	viper.SetDefault("scoring.positions.good", def.Scoring.Positions.Good)
	viper.SetDefault("scoring.positions.average", def.Scoring.Positions.Average)

	// Storage defaults
	viper.SetDefault("storage.type", def.Storage.Type)
	viper.SetDefault("storage.redis_addr", def.Storage.RedisAddr)
	viper.SetDefault("storage.redis_db", 0)
	viper.SetDefault("storage.key_prefix", "")
	viper.SetDefault("storage.retry_attempts", def.Storage.RetryAttempts)
	viper.SetDefault("storage.retry_backoff", "200ms")

	// Logging defaults
	viper.SetDefault("logging.level", def.Logging.Level)
	viper.SetDefault("logging.format", def.Logging.Format)
	viper.SetDefault("logging.output_path", def.Logging.OutputPath)
	viper.SetDefault("logging.max_size_mb", def.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", def.Logging.MaxBackups)
	viper.SetDefault("logging.max_age_days", def.Logging.MaxAgeDays)

	// Metrics defaults
	viper.SetDefault("metrics.addr", "")
}

// bindEnvVars binds environment variables
func bindEnvVars() {
	viper.SetEnvPrefix("SITEAUDIT")
	viper.AutomaticEnv()

	// Bind specific env vars
	viper.BindEnv("providers.pagespeed.api_key", "PAGESPEED_API_KEY")
	viper.BindEnv("providers.backlinks.api_key", "BACKLINKS_API_KEY")
	viper.BindEnv("providers.keywords.api_key", "KEYWORDS_API_KEY")
	viper.BindEnv("storage.redis_addr", "REDIS_ADDR")
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(config *Config) {
	if apiKey := os.Getenv("PAGESPEED_API_KEY"); apiKey != "" {
		config.Providers.PageSpeed.APIKey = apiKey
	}
	if apiKey := os.Getenv("BACKLINKS_API_KEY"); apiKey != "" {
		config.Providers.Backlinks.APIKey = apiKey
	}
	if apiKey := os.Getenv("KEYWORDS_API_KEY"); apiKey != "" {
		config.Providers.Keywords.APIKey = apiKey
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Storage.RedisAddr = addr
	}
}

// Get returns the current configuration
func Get() *Config {
	if !configLoaded || defaultConfig == nil {
		config, _ := Load("")
		return config
	}
	return defaultConfig
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("providers.timeout must be positive")
	}
	if c.Providers.RequestsPerSecond <= 0 {
		return fmt.Errorf("providers.requests_per_second must be positive")
	}
	if c.Scoring.Weights.Sum() <= 0 {
		return fmt.Errorf("scoring.weights must sum to a positive value")
	}
	if len(c.Scoring.BacklinkTiers) == 0 {
		return fmt.Errorf("scoring.backlink_tiers must not be empty")
	}
	if c.Storage.Type != "memory" && c.Storage.Type != "redis" {
		return fmt.Errorf("storage.type must be %q or %q, got %q", "memory", "redis", c.Storage.Type)
	}
	if c.Storage.RetryAttempts < 1 {
		return fmt.Errorf("storage.retry_attempts must be at least 1")
	}
	return nil
}
