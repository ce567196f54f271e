// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmcdice/plainify/internal/convert"
	"github.com/jmcdice/plainify/internal/pipeline"
	"github.com/jmcdice/plainify/internal/rewrite"
	"github.com/jmcdice/plainify/internal/secrets"
	"github.com/jmcdice/plainify/pkg/types"
)

func runPipeline(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	cfg := pipelineConfig()

	// Resolve the API key before touching any files so a missing credential
	// fails fast.
	key, err := secrets.Resolve(cfg.Rewrite.Backend)
	if err != nil {
		return err
	}
	cfg.Rewrite.APIKey = key

	rewriter, err := rewrite.NewRewriter(cfg.Rewrite)
	if err != nil {
		return err
	}
	processor := rewrite.NewProcessor(rewriter, cfg.Rewrite.MaxConcurrent, logger)

	// Extraction backends can be noisy on their diagnostic stream; only pass
	// it through in verbose runs.
	diag := io.Discard
	if verbose {
		diag = os.Stderr
	}
	extractor, err := convert.New(cfg.Conversion, diag)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Extractor: extractor,
		Processor: processor,
		Chunking:  cfg.Chunking,
		Log:       logger,
	}

	report, err := runner.Run(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}

	if cfg.ReportPath != "" {
		if err := pipeline.WriteReport(report, cfg.ReportPath); err != nil {
			return err
		}
		logger.Info("wrote run report", "path", cfg.ReportPath)
	}

	return nil
}

// pipelineConfig assembles the run configuration from viper, which layers
// flags over PLAINIFY_* environment variables over the config file.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Conversion: types.ConversionConfig{
			Backend: types.ExtractionBackend(viper.GetString("extraction-backend")),
		},
		Chunking: types.ChunkingConfig{
			MaxChunkSize: viper.GetInt("max-chunk-size"),
		},
		Rewrite: types.RewriteConfig{
			Backend:         types.RewriteBackend(viper.GetString("rewrite-backend")),
			Model:           viper.GetString("model"),
			MaxConcurrent:   viper.GetInt("max-concurrent"),
			MaxOutputTokens: viper.GetInt("max-output-tokens"),
			Temperature:     viper.GetFloat64("temperature"),
		},
		ReportPath: viper.GetString("report"),
	}
}

func newLogger(verbose bool) *log.Logger {
	opts := log.Options{ReportTimestamp: true}
	if verbose {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}
