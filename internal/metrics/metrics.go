package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes analysis counters to Prometheus. A nil *Recorder is
// valid and records nothing.
type Recorder struct {
	fitsTotal   *prometheus.CounterVec
	runsTotal   *prometheus.CounterVec
	cacheHits   prometheus.Counter
	fitDuration *prometheus.HistogramVec
	lastCADR    *prometheus.GaugeVec
	samples     prometheus.Counter
}

// New registers the analysis metrics with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadr_fits_total",
				Help: "Decay fits by window strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadr_runs_total",
				Help: "Multi-trial analyses by outcome",
			},
			[]string{"outcome"},
		),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "cadr_cache_hits_total",
			Help: "Analyses served from the result cache",
		}),
		fitDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cadr_fit_duration_seconds",
				Help:    "Time spent selecting a window and fitting it",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		lastCADR: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cadr_last_mean_cadr",
				Help: "Mean CADR of the most recent successful run",
			},
			[]string{"profile"},
		),
		samples: f.NewCounter(prometheus.CounterOpts{
			Name: "cadr_chamber_samples_total",
			Help: "Samples recorded by the chamber simulator",
		}),
	}
}

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

// ObserveFit records one fit attempt.
func (r *Recorder) ObserveFit(strategy string, took time.Duration, err error) {
	if r == nil {
		return
	}
	r.fitsTotal.WithLabelValues(strategy, outcome(err)).Inc()
	r.fitDuration.WithLabelValues(strategy).Observe(took.Seconds())
}

// ObserveRun records one multi-trial analysis.
func (r *Recorder) ObserveRun(profile string, meanCADR float64, err error) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		r.lastCADR.WithLabelValues(profile).Set(meanCADR)
	}
}

// CacheHit counts an analysis served from cache.
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}

// SampleRecorded counts a simulated chamber sample.
func (r *Recorder) SampleRecorded() {
	if r == nil {
		return
	}
	r.samples.Inc()
}
