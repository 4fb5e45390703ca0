package crawler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/corpuskit/wikicrawl/internal/mediawiki"
)

// RunnerConfig lists the (language, category) pairs of a run and the
// delay applied after a failed pair. EndpointFor maps a language code
// to its API endpoint; it defaults to the wikipedia.org layout and is
// overridable in tests.
type RunnerConfig struct {
	Languages   []string
	Categories  []string
	RetryDelay  time.Duration
	EndpointFor func(lang string) string
}

// Runner drives the full crawl: languages outer loop, categories inner
// loop, all pairs writing to the same sink in iteration order. A pair's
// failure never aborts the run; only cancellation and sink write errors
// do.
type Runner struct {
	crawler *Crawler
	cfg     RunnerConfig
	pause   pauseController
	logger  *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(crawler *Crawler, cfg RunnerConfig, logger *zap.Logger) *Runner {
	if cfg.EndpointFor == nil {
		cfg.EndpointFor = mediawiki.Endpoint
	}
	return &Runner{
		crawler: crawler,
		cfg:     cfg,
		pause:   &timerPauseController{},
		logger:  logger,
	}
}

// Run crawls every configured (language, category) pair sequentially.
func (r *Runner) Run(ctx context.Context) error {
	log := r.logger.With(zap.String("run_id", uuid.NewString()))
	log.Info("Starting crawl run",
		zap.Strings("languages", r.cfg.Languages),
		zap.Strings("categories", r.cfg.Categories),
	)

	for _, lang := range r.cfg.Languages {
		endpoint := r.cfg.EndpointFor(lang)
		for _, category := range r.cfg.Categories {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := r.crawler.CrawlCategory(ctx, endpoint, lang, category)
			if err == nil {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			var sinkErr *SinkError
			if errors.As(err, &sinkErr) {
				// The output file itself is broken; nothing left to salvage.
				return err
			}
			log.Error("Category crawl failed",
				zap.String("lang", lang),
				zap.String("category", category),
				zap.Error(err),
			)
			r.pause.Pause(ctx, r.cfg.RetryDelay)
		}
	}

	log.Info("Crawl run complete")
	return nil
}
