package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pagesWrittenTotal tracks records appended to the output sink, by language.
	pagesWrittenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikicrawl_pages_written_total",
		Help: "The total number of article records written, labeled by language.",
	}, []string{"lang"})
	// pagesSkippedTotal tracks members not written, by reason.
	pagesSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wikicrawl_pages_skipped_total",
		Help: "The total number of category members skipped, labeled by reason.",
	}, []string{"reason"})
	// pageFetchFailuresTotal tracks extract fetches that failed after retries.
	pageFetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikicrawl_page_fetch_failures_total",
		Help: "The total number of page extract fetches that ultimately failed.",
	})
	// categoriesCrawledTotal tracks category frames processed.
	categoriesCrawledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikicrawl_categories_crawled_total",
		Help: "The total number of categories visited during traversal.",
	})
)

const (
	skipReasonSeen  = "seen"
	skipReasonEmpty = "empty_extract"
)
