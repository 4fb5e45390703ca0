// Package cmd defines and implements the CLI commands for the wikicrawl executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/corpuskit/wikicrawl/internal/api"
	"github.com/corpuskit/wikicrawl/internal/config"
	"github.com/corpuskit/wikicrawl/internal/crawler"
	"github.com/corpuskit/wikicrawl/internal/logging"
	"github.com/corpuskit/wikicrawl/internal/mediawiki"
)

// newCrawlCmd creates and configures the 'crawl' subcommand.
// It loads configuration, assembles the crawl pipeline, and runs it to
// completion or first interrupt.
func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Starts the category crawl",
		Long: `Crawls the configured Wikipedia categories across the configured
language editions and appends one JSON record per collected article to
the output file. The crawl is strictly sequential: one request in
flight, a politeness pause after every written page.`,

		RunE: runCrawlCommand,
	}
	return cmd
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		srv := api.NewServer(cfg.Metrics.Addr, logger)
		srv.Start()
		defer func() {
			if serr := srv.Shutdown(context.Background()); serr != nil {
				logger.Warn("Failed to shut down metrics server", zap.Error(serr))
			}
		}()
	}

	runner, closeFn, err := buildRunner(cfg, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run crawl: %w", err)
	}

	logger.Info("Crawl command finished.")
	return nil
}

// buildRunner assembles client, sink, crawler, and driver from config.
// The returned close function flushes and closes the output sink.
func buildRunner(cfg config.Config, logger *zap.Logger) (*crawler.Runner, func(), error) {
	client, err := mediawiki.NewClient(mediawiki.ClientConfig{
		UserAgent:  cfg.HTTP.UserAgent,
		Timeout:    cfg.HTTP.Timeout,
		MaxRetries: cfg.HTTP.MaxRetries,
		RetryDelay: cfg.HTTP.RetryDelay,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init mediawiki client: %w", err)
	}

	sink, err := crawler.NewJSONLSink(cfg.Output.Path, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init output sink: %w", err)
	}

	crawl := crawler.New(client, sink, crawler.Config{
		MaxPagesPerCategory: cfg.Crawl.MaxPagesPerCategory,
		Depth:               cfg.Crawl.Depth,
		PageSize:            cfg.Crawl.PageSize,
		PolitenessDelay:     cfg.Crawl.PolitenessDelay,
	}, logger)

	runner := crawler.NewRunner(crawl, crawler.RunnerConfig{
		Languages:  cfg.Crawl.Languages,
		Categories: cfg.Crawl.Categories,
		RetryDelay: cfg.HTTP.RetryDelay,
	}, logger)

	closeFn := func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("Failed to close output sink", zap.Error(cerr))
		}
	}
	return runner, closeFn, nil
}
