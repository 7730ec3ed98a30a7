package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, []string{SinkCSV}, cfg.Output.Sinks)
	require.Equal(t, 1, cfg.Search.Workers)
	require.False(t, cfg.Search.SkipInvalidQueries)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yml := `
input:
  queriesFile: queries.numerate.txt
  docsFile: docs.tsv
output:
  submissionFile: out.csv
  sinks: [csv, kafka]
search:
  workers: 4
  skipInvalidQueries: true
kafka:
  brokers: [broker-1:9092]
  resultTopic: results
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("BS_SEARCH_WORKERS", "8")
	t.Setenv("BS_LOGGING_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "queries.numerate.txt", cfg.Input.QueriesFile)
	require.Equal(t, []string{SinkCSV, SinkKafka}, cfg.Output.Sinks)
	require.Equal(t, 8, cfg.Search.Workers)
	require.True(t, cfg.Search.SkipInvalidQueries)
	require.Equal(t, []string{"broker-1:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "json", cfg.Logging.Format)
	require.NoError(t, cfg.Validate())
}

func TestEnvListsAreTrimmed(t *testing.T) {
	t.Setenv("BS_QUERIES_FILE", "queries.txt")
	t.Setenv("BS_DOCS_FILE", "docs.tsv")
	t.Setenv("BS_SUBMISSION_FILE", "out.csv")
	t.Setenv("BS_SINKS", "csv, kafka ,")
	t.Setenv("BS_KAFKA_BROKERS", " broker-1:9092 , broker-2:9092")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, []string{SinkCSV, SinkKafka}, cfg.Output.Sinks)
	require.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		cfg.Input.QueriesFile = "q.tsv"
		cfg.Input.DocsFile = "d.tsv"
		cfg.Output.SubmissionFile = "out.csv"
		return cfg
	}
	require.NoError(t, base().Validate())

	cfg := base()
	cfg.Input.DocsFile = ""
	require.ErrorContains(t, cfg.Validate(), "docsFile")

	cfg = base()
	cfg.Output.Sinks = []string{"s3"}
	require.ErrorContains(t, cfg.Validate(), "unknown sink")

	cfg = base()
	cfg.Search.Workers = 0
	require.ErrorContains(t, cfg.Validate(), "workers")

	cfg = base()
	cfg.Output.SubmissionFile = ""
	require.ErrorContains(t, cfg.Validate(), "submissionFile")
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	require.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", p.DSN())
}
