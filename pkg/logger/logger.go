// Package logger configures the process-wide slog logger and carries
// batch-scoped attributes (run id, pipeline stage) through a context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type fieldsKey struct{}

type fields struct {
	runID string
	stage string
}

func Setup(level string, format string) {
	SetupWriter(os.Stdout, level, format)
}

// SetupWriter installs the default logger writing to w.
func SetupWriter(w io.Writer, level string, format string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func fieldsFrom(ctx context.Context) fields {
	f, _ := ctx.Value(fieldsKey{}).(fields)
	return f
}

// WithRunID tags every log line produced from ctx with the batch run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	f := fieldsFrom(ctx)
	f.runID = runID
	return context.WithValue(ctx, fieldsKey{}, f)
}

// WithStage tags log lines with the pipeline stage (parse, index, evaluate,
// write) currently running.
func WithStage(ctx context.Context, stage string) context.Context {
	f := fieldsFrom(ctx)
	f.stage = stage
	return context.WithValue(ctx, fieldsKey{}, f)
}

func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	f := fieldsFrom(ctx)
	if f.runID != "" {
		l = l.With("run_id", f.runID)
	}
	if f.stage != "" {
		l = l.With("stage", f.stage)
	}
	return l
}

func WithComponent(ctx context.Context, component string) *slog.Logger {
	return FromContext(ctx).With("component", component)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
