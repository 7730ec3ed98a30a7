package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/internal/submission"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Boolean-Search/pkg/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	queriesFile := flag.String("queries_file", "", "queries.numerate.txt")
	objectsFile := flag.String("objects_file", "", "objects.numerate.txt")
	docsFile := flag.String("docs_file", "", "docs.tsv")
	submissionFile := flag.String("submission_file", "", "output file with relevances")
	runID := flag.String("run_id", "", "identifier stored with rows in the postgres and kafka sinks")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(apperrors.ExitFailure)
	}
	if *queriesFile != "" {
		cfg.Input.QueriesFile = *queriesFile
	}
	if *objectsFile != "" {
		cfg.Input.ObjectsFile = *objectsFile
	}
	if *docsFile != "" {
		cfg.Input.DocsFile = *docsFile
	}
	if *submissionFile != "" {
		cfg.Output.SubmissionFile = *submissionFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(apperrors.ExitInput)
	}
	if *runID == "" {
		*runID = time.Now().UTC().Format("20060102T150405Z")
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logger.WithRunID(ctx, *runID)

	code := run(ctx, cfg, *runID)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, runID string) int {
	log := logger.FromContext(ctx)
	log.Info("starting boolean search batch",
		"queries_file", cfg.Input.QueriesFile,
		"docs_file", cfg.Input.DocsFile,
		"sinks", cfg.Output.Sinks,
		"workers", cfg.Search.Workers,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	if cfg.Metrics.Enabled {
		srv, err := metrics.StartServer(fmt.Sprintf(":%d", cfg.Metrics.Port), reg)
		if err != nil {
			log.Error("starting metrics server", "error", err)
			return apperrors.ExitFailure
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	queriesIn, err := os.Open(cfg.Input.QueriesFile)
	if err != nil {
		log.Error("opening queries file", "error", err)
		return apperrors.ExitInput
	}
	defer queriesIn.Close()
	docsIn, err := os.Open(cfg.Input.DocsFile)
	if err != nil {
		log.Error("opening documents file", "error", err)
		return apperrors.ExitInput
	}
	defer docsIn.Close()

	sinks, cleanup, err := openSinks(ctx, cfg, runID)
	if err != nil {
		log.Error("opening result sinks", "error", err)
		return apperrors.ExitFailure
	}
	defer cleanup()

	p := pipeline.New(pipeline.Options{
		Workers:            cfg.Search.Workers,
		SkipInvalidQueries: cfg.Search.SkipInvalidQueries,
	}, m)
	summary, err := p.Run(ctx, queriesIn, docsIn, sinks)
	if closeErr := sinks.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing sinks: %w", closeErr)
	}
	if err != nil {
		log.Error("batch failed", "error", err)
		return apperrors.ExitCode(err)
	}
	log.Info("batch finished",
		"queries", summary.Queries,
		"invalid_queries", summary.InvalidQueries,
		"terms", summary.Terms,
		"documents", summary.Documents,
		"rows", summary.Rows,
	)
	return apperrors.ExitOK
}

// openSinks opens every configured sink. cleanup releases the connections
// the sinks borrow; the sinks themselves are closed by the caller.
func openSinks(ctx context.Context, cfg *config.Config, runID string) (submission.Multi, func(), error) {
	var sinks submission.Multi
	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				slog.Error("releasing sink connection", "error", err)
			}
		}
	}
	fail := func(err error) (submission.Multi, func(), error) {
		sinks.Close()
		cleanup()
		return nil, nil, err
	}
	for _, name := range cfg.Output.Sinks {
		switch name {
		case config.SinkCSV:
			s, err := submission.CreateCSVFile(cfg.Output.SubmissionFile)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, s)
		case config.SinkPostgres:
			client, err := postgres.New(ctx, cfg.Postgres)
			if err != nil {
				return fail(err)
			}
			closers = append(closers, client.Close)
			s, err := submission.NewPostgresSink(ctx, client, cfg.Postgres.Table, runID)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, s)
		case config.SinkKafka:
			producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.ResultTopic)
			sinks = append(sinks, submission.NewKafkaSink(producer, runID))
		default:
			return fail(fmt.Errorf("unknown sink %q", name))
		}
	}
	return sinks, cleanup, nil
}
