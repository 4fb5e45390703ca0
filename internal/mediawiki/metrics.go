package mediawiki

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal tracks every API request attempt dispatched.
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikicrawl_api_requests_total",
		Help: "The total number of MediaWiki API request attempts.",
	})
	// requestFailuresTotal tracks attempts that failed at transport or status level.
	requestFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikicrawl_api_request_failures_total",
		Help: "The total number of failed MediaWiki API request attempts.",
	})
	// retriesTotal tracks how often a failed attempt was retried.
	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wikicrawl_api_retries_total",
		Help: "The total number of retries after failed API requests.",
	})
)
