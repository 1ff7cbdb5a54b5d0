package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	DatasetRecords  *prometheus.GaugeVec   // collection label
	DatasetFailures *prometheus.CounterVec // collection label
	DatasetLoads    prometheus.Counter
	DatasetLoadedAt prometheus.Gauge // unix seconds

	Searches        *prometheus.CounterVec // time preference label
	SearchResults   prometheus.Histogram
	SearchDuration  prometheus.Histogram
	NotifyPublished prometheus.Counter
	NotifyErrors    prometheus.Counter
	NATSConnected   prometheus.Gauge

	EveningEndHour prometheus.Gauge
	ReloadInterval prometheus.Gauge // seconds
}

func NewCollector(eveningEndHour int, reloadInterval time.Duration) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		DatasetRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "transit_dataset_records",
			Help: "Records per collection in the current dataset.",
		}, []string{"collection"}),
		DatasetFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_dataset_load_failures_total",
			Help: "Collections replaced by an empty one after a failed load.",
		}, []string{"collection"}),
		DatasetLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_dataset_loads_total",
			Help: "Total dataset loads.",
		}),
		DatasetLoadedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_dataset_loaded_timestamp_seconds",
			Help: "Unix time of the current dataset load.",
		}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_searches_total",
			Help: "Trip searches by time preference.",
		}, []string{"time"}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_search_results",
			Help:    "Itineraries returned per search.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transit_search_duration_seconds",
			Help:    "Time spent matching and aggregating a search.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 15),
		}),
		NotifyPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_nats_published_total",
			Help: "Total dataset notifications published.",
		}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transit_nats_publish_errors_total",
			Help: "Total dataset notification publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		EveningEndHour: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_evening_band_end_hour",
			Help: "Configured end hour of the evening band.",
		}),
		ReloadInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "transit_reload_interval_seconds",
			Help: "Dataset reload interval in seconds, 0 when disabled.",
		}),
	}

	reg.MustRegister(
		c.DatasetRecords, c.DatasetFailures, c.DatasetLoads, c.DatasetLoadedAt,
		c.Searches, c.SearchResults, c.SearchDuration,
		c.NotifyPublished, c.NotifyErrors, c.NATSConnected,
		c.EveningEndHour, c.ReloadInterval,
	)

	c.EveningEndHour.Set(float64(eveningEndHour))
	c.ReloadInterval.Set(reloadInterval.Seconds())

	return c
}

// ObserveLoad records the outcome of a dataset load
func (c *Collector) ObserveLoad(counts map[string]int, failed []string, loadedAt time.Time) {
	c.DatasetLoads.Inc()
	c.DatasetLoadedAt.Set(float64(loadedAt.Unix()))
	for name, n := range counts {
		c.DatasetRecords.WithLabelValues(name).Set(float64(n))
	}
	for _, name := range failed {
		c.DatasetFailures.WithLabelValues(name).Inc()
	}
}

// ObserveSearch records one search
func (c *Collector) ObserveSearch(timePref string, results int, d time.Duration) {
	if timePref == "" {
		timePref = "any"
	}
	c.Searches.WithLabelValues(timePref).Inc()
	c.SearchResults.Observe(float64(results))
	c.SearchDuration.Observe(d.Seconds())
}

// Publisher metrics
func (c *Collector) NotifyPublishedInc() { c.NotifyPublished.Inc() }
func (c *Collector) NotifyErrInc()       { c.NotifyErrors.Inc() }
func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
	} else {
		c.NATSConnected.Set(0)
	}
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
