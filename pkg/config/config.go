// Package config loads batch-run configuration from a YAML file with
// environment-variable overrides. It provides typed structs for the input
// files, result sinks, query evaluation, logging, metrics and the optional
// PostgreSQL and Kafka sinks.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sink names accepted in OutputConfig.Sinks.
const (
	SinkCSV      = "csv"
	SinkPostgres = "postgres"
	SinkKafka    = "kafka"
)

// Config is the top-level application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Search   SearchConfig   `yaml:"search"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// InputConfig names the tab-separated input files.
type InputConfig struct {
	QueriesFile string `yaml:"queriesFile"`
	DocsFile    string `yaml:"docsFile"`
	ObjectsFile string `yaml:"objectsFile"`
}

// OutputConfig selects where relevance rows are written.
type OutputConfig struct {
	SubmissionFile string   `yaml:"submissionFile"`
	Sinks          []string `yaml:"sinks"`
}

// SearchConfig controls query evaluation.
type SearchConfig struct {
	Workers            int  `yaml:"workers"`
	SkipInvalidQueries bool `yaml:"skipInvalidQueries"`
}

// PostgresConfig holds PostgreSQL connection parameters for the relevance
// table sink.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	Table           string        `yaml:"table"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds Kafka broker and topic settings.
type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	ResultTopic string   `yaml:"resultTopic"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing
// values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Validate checks that the configuration describes a runnable batch.
func (c *Config) Validate() error {
	if c.Input.QueriesFile == "" {
		return fmt.Errorf("input.queriesFile is required")
	}
	if c.Input.DocsFile == "" {
		return fmt.Errorf("input.docsFile is required")
	}
	if len(c.Output.Sinks) == 0 {
		return fmt.Errorf("output.sinks must name at least one sink")
	}
	for _, sink := range c.Output.Sinks {
		switch sink {
		case SinkCSV:
			if c.Output.SubmissionFile == "" {
				return fmt.Errorf("output.submissionFile is required for the csv sink")
			}
		case SinkPostgres:
			if c.Postgres.Table == "" {
				return fmt.Errorf("postgres.table is required for the postgres sink")
			}
		case SinkKafka:
			if len(c.Kafka.Brokers) == 0 || c.Kafka.ResultTopic == "" {
				return fmt.Errorf("kafka.brokers and kafka.resultTopic are required for the kafka sink")
			}
		default:
			return fmt.Errorf("unknown sink %q", sink)
		}
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be at least 1, got %d", c.Search.Workers)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Sinks: []string{SinkCSV},
		},
		Search: SearchConfig{
			Workers: 1,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "boolsearch",
			User:            "boolsearch",
			Password:        "localdev",
			SSLMode:         "disable",
			Table:           "relevance",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:     []string{"localhost:9092"},
			ResultTopic: "boolsearch-results",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads BS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BS_QUERIES_FILE"); v != "" {
		cfg.Input.QueriesFile = v
	}
	if v := os.Getenv("BS_DOCS_FILE"); v != "" {
		cfg.Input.DocsFile = v
	}
	if v := os.Getenv("BS_SUBMISSION_FILE"); v != "" {
		cfg.Output.SubmissionFile = v
	}
	if v := os.Getenv("BS_SINKS"); v != "" {
		cfg.Output.Sinks = splitList(v)
	}
	if v := os.Getenv("BS_SEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.Workers = n
		}
	}
	if v := os.Getenv("BS_SEARCH_SKIP_INVALID"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Search.SkipInvalidQueries = b
		}
	}
	if v := os.Getenv("BS_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("BS_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("BS_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("BS_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("BS_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("BS_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("BS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("BS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}

// splitList splits a comma-separated env value, trimming spaces and dropping
// empty elements.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
