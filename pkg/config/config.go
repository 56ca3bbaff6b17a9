package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	xutil "FinScope/pkg/util"
)

type Config struct {
	Environment string           `yaml:"environment" default:"development"`
	Server      ServerConfig     `yaml:"server"`
	Log         LogConfig        `yaml:"log"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	FMP         FMPConfig        `yaml:"fmp"`
	GNews       GNewsConfig      `yaml:"gnews"`
	Aggregator  AggregatorConfig `yaml:"aggregator"`
	Kafka       KafkaConfig      `yaml:"kafka"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	CORS            bool          `yaml:"cors" default:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"` // json or console
	Output string `yaml:"output" default:"stdout"`

	// Collector dedupes error logs and ships them to kafka.log_topic.
	Collector struct {
		Enabled        bool          `yaml:"enabled"`
		Interval       time.Duration `yaml:"interval" default:"30s"`
		CountThreshold int           `yaml:"count_threshold" default:"100"`
	} `yaml:"collector"`
}

type MetricsConfig struct {
	Enabled       bool          `yaml:"enabled" default:"true"`
	Path          string        `yaml:"path" default:"/metrics"`
	SlowThreshold time.Duration `yaml:"slow_threshold" default:"5s"`
}

// FMPConfig points at Financial Modeling Prep. The key is a secret and is
// expected to come from FMP_API_KEY rather than the YAML file.
type FMPConfig struct {
	BaseURL   string        `yaml:"base_url" default:"https://financialmodelingprep.com/api/v3"`
	BaseURLV4 string        `yaml:"base_url_v4" default:"https://financialmodelingprep.com/api/v4"`
	APIKey    string        `yaml:"api_key"`
	Timeout   time.Duration `yaml:"timeout" default:"10s"`
}

type GNewsConfig struct {
	BaseURL string        `yaml:"base_url" default:"https://gnews.io/api/v4"`
	APIKey  string        `yaml:"api_key"`
	Lang    string        `yaml:"lang" default:"es"`
	Max     int           `yaml:"max" default:"10"`
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

type AggregatorConfig struct {
	ProfileConcurrency int           `yaml:"profile_concurrency" default:"4"`
	UpstreamTimeout    time.Duration `yaml:"upstream_timeout" default:"15s"`
	PriceHistoryDays   int           `yaml:"price_history_days" default:"250"`
}

type KafkaConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Brokers      []string      `yaml:"brokers"`
	LogTopic     string        `yaml:"log_topic" default:"finscope.logs"`
	RequiredAcks int           `yaml:"required_acks" default:"1"`
	Compression  string        `yaml:"compression" default:"gzip"`
	MaxAttempts  int           `yaml:"max_attempts" default:"3"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	Async        bool          `yaml:"async" default:"true"`
}

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
// A missing file is not an error; the defaults plus environment are enough
// to run the service.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.ApplyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from the given lookup (os.Getenv in production).
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("FMP_API_KEY"); v != "" {
		c.FMP.APIKey = v
	}
	if v := getenv("GNEWS_API_KEY"); v != "" {
		c.GNews.APIKey = v
	}
	if v := getenv("PORT"); v != "" {
		c.Server.Port = xutil.ParseIntDefault(v, c.Server.Port)
	}
	if v := getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := getenv("KAFKA_LOG_TOPIC"); v != "" {
		c.Kafka.LogTopic = v
	}
}

// Validate checks if the configuration is valid. API keys are checked per
// request by the handlers that need them.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.FMP.Timeout <= 0 || c.GNews.Timeout <= 0 || c.Aggregator.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}
	if c.Aggregator.ProfileConcurrency <= 0 {
		return fmt.Errorf("aggregator.profile_concurrency must be positive")
	}
	if c.GNews.Max <= 0 {
		return fmt.Errorf("gnews.max must be positive")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.LogTopic == "" {
			return fmt.Errorf("kafka.log_topic is required when kafka is enabled")
		}
	}
	return nil
}
