// Package config provides centralized configuration management
// using Viper for configuration loading and validation
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Auth       AuthConfig       `mapstructure:"auth"`
	AI         AIConfig         `mapstructure:"ai"`
	Importer   ImporterConfig   `mapstructure:"importer"`
	Pantry     PantryConfig     `mapstructure:"pantry"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	EnableCompression bool          `mapstructure:"enable_compression"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Path               string        `mapstructure:"path"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Database           string        `mapstructure:"database"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	SSLMode            string        `mapstructure:"ssl_mode"`
	ReadReplicas       []string      `mapstructure:"read_replicas"`
	LoadBalancePolicy  string        `mapstructure:"load_balance_policy"`
	MaxOpenConns       int           `mapstructure:"max_open_conns"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	LogLevel           string        `mapstructure:"log_level"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addrs        []string      `mapstructure:"addrs"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	MaxRetries   int           `mapstructure:"max_retries"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// AuthConfig contains token verification settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	Issuer    string        `mapstructure:"issuer"`
	Audience  string        `mapstructure:"audience"`
	Leeway    time.Duration `mapstructure:"leeway"`
}

// AIConfig selects and configures the recipe extractor
type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	APIKey       string        `mapstructure:"api_key"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxPageChars int           `mapstructure:"max_page_chars"`
}

// ImporterConfig configures page fetching and the import rate limit
type ImporterConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Burst             int           `mapstructure:"burst"`
}

// PantryConfig configures expiry tracking
type PantryConfig struct {
	ExpiringWindowDays int `mapstructure:"expiring_window_days"`
}

// CatalogConfig configures the master recipe catalog
type CatalogConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Seed     bool          `mapstructure:"seed"`
}

// MonitoringConfig contains monitoring configuration
type MonitoringConfig struct {
	EnableMetrics  bool          `mapstructure:"enable_metrics"`
	EnableTracing  bool          `mapstructure:"enable_tracing"`
	OTLPEndpoint   string        `mapstructure:"otlp_endpoint"`
	OTLPInsecure   bool          `mapstructure:"otlp_insecure"`
	SamplingRate   float64       `mapstructure:"sampling_rate"`
	HealthCacheTTL time.Duration `mapstructure:"health_cache_ttl"`
}

var (
	validDrivers   = map[string]bool{"sqlite": true, "postgres": true}
	validProviders = map[string]bool{"openai": true, "ollama": true, "mock": true}
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

func newViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/kitchen")
	}

	v.SetEnvPrefix("KITCHEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// a missing file is fine, defaults and env cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Alchemorsel Kitchen")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	// imports wait on a model, so writes get more room than reads
	v.SetDefault("server.write_timeout", "150s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.max_header_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.enable_compression", true)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "kitchen.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.database", "kitchen")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.load_balance_policy", "round_robin")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_query_threshold", "200ms")
	v.SetDefault("database.auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addrs", []string{"localhost:6379"})
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.key_prefix", "kitchen:")

	// Auth defaults
	v.SetDefault("auth.issuer", "alchemorsel")
	v.SetDefault("auth.leeway", "30s")

	// AI defaults
	v.SetDefault("ai.provider", "mock")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.1)
	v.SetDefault("ai.max_tokens", 2000)
	v.SetDefault("ai.timeout", "120s")
	v.SetDefault("ai.max_page_chars", 12000)

	// Importer defaults
	v.SetDefault("importer.fetch_timeout", "15s")
	v.SetDefault("importer.max_body_bytes", 5<<20)
	v.SetDefault("importer.requests_per_minute", 10)
	v.SetDefault("importer.burst", 3)

	v.SetDefault("pantry.expiring_window_days", 3)

	v.SetDefault("catalog.cache_ttl", "10m")
	v.SetDefault("catalog.seed", true)

	// Monitoring defaults
	v.SetDefault("monitoring.enable_metrics", true)
	v.SetDefault("monitoring.enable_tracing", false)
	v.SetDefault("monitoring.otlp_endpoint", "localhost:4318")
	v.SetDefault("monitoring.otlp_insecure", true)
	v.SetDefault("monitoring.sampling_rate", 0.1)
	v.SetDefault("monitoring.health_cache_ttl", "5s")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.Database == "" {
		return fmt.Errorf("database.database is required for postgres")
	}

	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis.addrs is required when redis is enabled")
	}

	if c.Auth.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("auth.jwt_secret is required in production")
	}

	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("ai.provider must be openai, ollama or mock, got %q", c.AI.Provider)
	}
	if c.AI.Provider == "openai" && c.AI.APIKey == "" && c.AI.BaseURL == "" {
		return fmt.Errorf("ai.api_key is required for the openai provider")
	}

	if c.Importer.RequestsPerMinute < 0 {
		return fmt.Errorf("importer.requests_per_minute must not be negative")
	}

	if c.Monitoring.SamplingRate < 0 || c.Monitoring.SamplingRate > 1 {
		return fmt.Errorf("monitoring.sampling_rate must be between 0 and 1")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Address returns the listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDSN returns the postgres connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
