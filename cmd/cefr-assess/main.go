/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs one CEFR assessment step over a directory of
// transcripts. The step is chosen with MODE:
//
//	transcripts  evaluate every criterion of each *_transcript.txt
//	fluency      evaluate fluency from speech metrics and merge it into results
//	overall      aggregate result files into weighted overall levels
//	predict      predict levels of *_transcript_USER.txt with a trained classifier
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-envconfig"
	"go.opentelemetry.io/otel/attribute"

	"chainguard.dev/cefrassess/aggregate"
	"chainguard.dev/cefrassess/batch"
	"chainguard.dev/cefrassess/evaluator"
	"chainguard.dev/cefrassess/llm"
	"chainguard.dev/cefrassess/metrics"
	"chainguard.dev/cefrassess/predictor"
	"chainguard.dev/cefrassess/speech"
)

type config struct {
	Mode string `env:"MODE,default=transcripts"`

	InputDir  string `env:"INPUT_DIR,default=."`
	OutputDir string `env:"OUTPUT_DIR"`

	// SpeechMetrics is the speech_metrics.json produced by audio analysis.
	SpeechMetrics string `env:"SPEECH_METRICS"`
	Concurrency   int    `env:"CONCURRENCY,default=4"`

	// MetricsAddr serves Prometheus metrics when set, e.g. ":2112".
	MetricsAddr string `env:"METRICS_ADDR"`

	PredictorModel      string `env:"PREDICTOR_MODEL"`
	PredictorPlusLevels bool   `env:"PREDICTOR_PLUS_LEVELS,default=false"`

	LLM llm.Config `env:",prefix=LLM_"`
}

func (c config) outputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.InputDir
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	shutdown, err := metrics.Setup(ctx, prometheus.DefaultRegisterer)
	if err != nil {
		clog.FatalContextf(ctx, "setting up telemetry: %v", err)
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				clog.ErrorContextf(ctx, "metrics server failed: %v", err)
			}
		}()
	}

	runErr := run(ctx, cfg, os.Stdout)
	// Flush before a fatal exit skips deferred calls.
	if err := shutdown(context.WithoutCancel(ctx)); err != nil {
		clog.WarnContextf(ctx, "shutting down telemetry: %v", err)
	}
	if runErr != nil {
		clog.FatalContextf(ctx, "%s failed: %v", cfg.Mode, runErr)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer) error {
	ctx = clog.WithLogger(ctx, clog.FromContext(ctx).
		With("mode", cfg.Mode).
		With("run", uuid.NewString()))

	switch cfg.Mode {
	case "transcripts":
		return runTranscripts(ctx, cfg)
	case "fluency":
		return runFluency(ctx, cfg)
	case "overall":
		return runOverall(ctx, cfg, stdout)
	case "predict":
		return runPredict(ctx, cfg, stdout)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func newClient(ctx context.Context, cfg config) (llm.Client, error) {
	m := metrics.NewGenAI(metrics.MeterName)
	m.SetAttributeEnricher(func(_ context.Context, base []attribute.KeyValue) []attribute.KeyValue {
		return append(base, attribute.String("mode", cfg.Mode))
	})
	return llm.New(ctx, cfg.LLM, llm.WithMetrics(m))
}

func loadSpeech(cfg config) ([]speech.Record, error) {
	if cfg.SpeechMetrics == "" {
		return nil, nil
	}
	return speech.Load(cfg.SpeechMetrics)
}

func runTranscripts(ctx context.Context, cfg config) error {
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	records, err := loadSpeech(cfg)
	if err != nil {
		return err
	}

	outcomes, err := batch.Transcripts(ctx, evaluator.Default(client), cfg.InputDir, cfg.outputDir(), records,
		batch.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return err
	}
	logCounts(ctx, outcomes)
	return nil
}

func runFluency(ctx context.Context, cfg config) error {
	if cfg.SpeechMetrics == "" {
		return errors.New("fluency needs SPEECH_METRICS")
	}
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	records, err := loadSpeech(cfg)
	if err != nil {
		return err
	}

	out := filepath.Join(cfg.outputDir(), batch.FluencyResultsFile)
	entries, err := batch.Fluency(ctx, evaluator.NewFluency(client), records, cfg.InputDir, out,
		batch.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return err
	}
	logCounts(ctx, batch.MergeFluency(ctx, cfg.outputDir(), entries))
	return nil
}

func runOverall(ctx context.Context, cfg config, stdout io.Writer) error {
	outcomes, err := aggregate.EvaluateDirectory(ctx, cfg.outputDir())
	if err != nil {
		return err
	}
	return aggregate.Report(stdout, outcomes)
}

func runPredict(ctx context.Context, cfg config, stdout io.Writer) error {
	if cfg.PredictorModel == "" {
		return errors.New("predict needs PREDICTOR_MODEL")
	}
	classifier, err := predictor.LoadSoftmax(cfg.PredictorModel)
	if err != nil {
		return err
	}
	var opts []predictor.Option
	if cfg.PredictorPlusLevels {
		opts = append(opts, predictor.WithPlusLevels())
	}
	model, err := predictor.New(classifier, opts...)
	if err != nil {
		return err
	}

	predictions, err := batch.Predictions(ctx, model, cfg.InputDir, cfg.outputDir())
	if err != nil {
		return err
	}
	return batch.Summary(stdout, predictions)
}

func logCounts(ctx context.Context, outcomes []batch.Outcome) {
	counts := make(map[batch.Status]int, 3)
	for _, o := range outcomes {
		counts[o.Status]++
	}
	clog.InfoContextf(ctx, "processed %d files: %d written, %d skipped, %d failed",
		len(outcomes), counts[batch.Written], counts[batch.Skipped], counts[batch.Failed])
}
