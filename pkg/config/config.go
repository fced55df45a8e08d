package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Gamma struct {
		BaseURL string        `yaml:"base_url"`
		Limit   int           `yaml:"limit"`
		Timeout time.Duration `yaml:"timeout"`
		Cache   struct {
			Enabled bool          `yaml:"enabled"`
			Backend string        `yaml:"backend"` // memory, redis, layered
			TTL     time.Duration `yaml:"ttl"`
		} `yaml:"cache"`
	} `yaml:"gamma"`
	Analyzer struct {
		MinScore      float64 `yaml:"min_score"`
		MinConfidence int     `yaml:"min_confidence"`
		MaxSignals    int     `yaml:"max_signals"`
	} `yaml:"analyzer"`
	Sink struct {
		Type string `yaml:"type"` // file, kafka, clickhouse
		Dir  string `yaml:"dir"`
	} `yaml:"sink"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		Table        string        `yaml:"table"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GAMMA_BASE_URL"); v != "" {
		c.Gamma.BaseURL = v
	}
	if v := os.Getenv("SIGNAL_SINK"); v != "" {
		c.Sink.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}

	return c.validated()
}

func (c *Config) validated() (*Config, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Gamma.Limit == 0 {
		c.Gamma.Limit = 50
	}
	if c.Gamma.Timeout == 0 {
		c.Gamma.Timeout = 15 * time.Second
	}
	if c.Analyzer.MinScore == 0 {
		c.Analyzer.MinScore = 50
	}
	if c.Analyzer.MinConfidence == 0 {
		c.Analyzer.MinConfidence = 60
	}
	if c.Analyzer.MaxSignals == 0 {
		c.Analyzer.MaxSignals = 5
	}
	if c.Sink.Type == "" {
		c.Sink.Type = "file"
	}
	if c.Sink.Dir == "" {
		c.Sink.Dir = "data"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Gamma.BaseURL == "" {
		return fmt.Errorf("gamma.base_url is required")
	}
	switch c.Sink.Type {
	case "file", "kafka", "clickhouse":
	default:
		return fmt.Errorf("sink.type must be 'file', 'kafka' or 'clickhouse', got '%s'", c.Sink.Type)
	}
	if c.Sink.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers are required for kafka sink")
	}
	if c.Sink.Type == "clickhouse" && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required for clickhouse sink")
	}
	if c.Gamma.Cache.Enabled {
		switch c.Gamma.Cache.Backend {
		case "memory", "redis", "layered":
		default:
			return fmt.Errorf("gamma.cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Gamma.Cache.Backend)
		}
	}
	return nil
}
