package crawler

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/corpuskit/wikicrawl/internal/mediawiki"
)

// Config holds the settings for one crawl session.
type Config struct {
	MaxPagesPerCategory int
	Depth               int
	PageSize            int
	PolitenessDelay     time.Duration
}

// Crawler walks category trees and streams article records to the sink.
// Execution is strictly sequential: one request in flight, a politeness
// pause after every written page.
type Crawler struct {
	client *mediawiki.Client
	sink   Sink
	cfg    Config
	pause  pauseController
	logger *zap.Logger
}

// New constructs a Crawler.
func New(client *mediawiki.Client, sink Sink, cfg Config, logger *zap.Logger) *Crawler {
	return &Crawler{
		client: client,
		sink:   sink,
		cfg:    cfg,
		pause:  &timerPauseController{},
		logger: logger,
	}
}

// frame is one pending category in the traversal worklist. Each frame
// carries its ancestor path by value, so the cycle guard needs no
// shared state.
type frame struct {
	category string
	depth    int
	path     []string
}

// CrawlCategory collects one top-level category from the given API
// endpoint for one language edition. The traversal uses an explicit
// LIFO worklist instead of recursion; subcategory frames are pushed in
// reverse enumeration order so the walk visits a category's pages
// first, then its first subcategory's whole subtree, and so on.
//
// The seen set lives exactly as long as this call: pages reachable via
// several subcategory paths are written once, but a page reachable from
// two different top-level categories is written twice.
func (c *Crawler) CrawlCategory(ctx context.Context, endpoint, lang, category string) error {
	seen := make(map[int64]struct{})
	stack := []frame{{category: category, depth: c.cfg.Depth, path: []string{category}}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := c.processFrame(ctx, endpoint, lang, fr, seen)
		if err != nil {
			return err
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

func (c *Crawler) processFrame(ctx context.Context, endpoint, lang string, fr frame, seen map[int64]struct{}) ([]frame, error) {
	categoriesCrawledTotal.Inc()
	c.logger.Info("Crawling category",
		zap.String("lang", lang),
		zap.String("path", strings.Join(fr.path, " > ")),
		zap.Int("depth", fr.depth),
	)

	if err := c.collectPages(ctx, endpoint, lang, fr, seen); err != nil {
		return nil, err
	}
	// depth 0 still collects the pages above; only descent stops.
	if fr.depth <= 0 {
		return nil, nil
	}
	return c.collectSubcategories(ctx, endpoint, fr)
}

// collectPages writes up to MaxPagesPerCategory records for the frame's
// own page members. Enumeration and sink failures abort the pair;
// per-page fetch failures are logged and skipped.
func (c *Crawler) collectPages(ctx context.Context, endpoint, lang string, fr frame, seen map[int64]struct{}) error {
	written := 0
	pager := c.client.CategoryMembers(endpoint, fr.category, mediawiki.MemberPages, c.cfg.PageSize)
	for written < c.cfg.MaxPagesPerCategory {
		m, ok, err := pager.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if _, dup := seen[m.PageID]; dup {
			pagesSkippedTotal.WithLabelValues(skipReasonSeen).Inc()
			continue
		}

		ext, err := c.client.PageExtract(ctx, endpoint, mediawiki.PageRef{PageID: m.PageID})
		if err != nil {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			pageFetchFailuresTotal.Inc()
			c.logger.Warn("Failed to fetch page extract",
				zap.String("lang", lang),
				zap.String("title", m.Title),
				zap.Error(err),
			)
			continue
		}
		if ext == nil || strings.TrimSpace(ext.Text) == "" {
			pagesSkippedTotal.WithLabelValues(skipReasonEmpty).Inc()
			continue
		}

		seen[m.PageID] = struct{}{}
		written++
		rec := Record{
			Lang:         lang,
			CategoryPath: append([]string(nil), fr.path...),
			Title:        ext.Title,
			PageID:       ext.PageID,
			Text:         ext.Text,
			URL:          PageURL(lang, ext.Title),
		}
		if err := c.sink.Write(ctx, rec); err != nil {
			return err
		}
		pagesWrittenTotal.WithLabelValues(lang).Inc()
		c.pause.Pause(ctx, c.cfg.PolitenessDelay)
	}
	return nil
}

// collectSubcategories returns child frames for every subcategory whose
// normalized name does not already appear in the ancestor path.
func (c *Crawler) collectSubcategories(ctx context.Context, endpoint string, fr frame) ([]frame, error) {
	var children []frame
	pager := c.client.CategoryMembers(endpoint, fr.category, mediawiki.MemberSubcategories, c.cfg.PageSize)
	for {
		m, ok, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		name := strings.TrimPrefix(m.Title, "Category:")
		if slices.Contains(fr.path, name) {
			c.logger.Debug("Skipping cyclic subcategory",
				zap.String("path", strings.Join(fr.path, " > ")),
				zap.String("subcategory", name),
			)
			continue
		}
		childPath := append(append([]string(nil), fr.path...), name)
		children = append(children, frame{category: name, depth: fr.depth - 1, path: childPath})
	}
	return children, nil
}
