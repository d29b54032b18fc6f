package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_runs_total",
		Help: "The total number of scrape runs started",
	})
	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_fetch_errors_total",
		Help: "The total number of failed dump fetches from the upstream",
	})
	ParseErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_parse_errors_total",
		Help: "The total number of runs aborted by a structural parse failure",
	})
	DuplicateTicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_duplicate_ticks_total",
		Help: "The total number of runs short-circuited because the tick was already ingested",
	})
	StoreErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_store_errors_total",
		Help: "The total number of runs aborted by a store write failure",
	})
	AnnounceErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_announce_errors_total",
		Help: "The total number of errors publishing tick events to Kafka",
	})
	RecordsWrittenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scraper_records_written_total",
		Help: "The total number of records written to the store, by record kind",
	}, []string{"kind"})
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scraper_run_duration_seconds",
		Help:    "Wall time of complete scrape runs",
		Buckets: prometheus.DefBuckets,
	})
)
