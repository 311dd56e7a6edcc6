// Package metrics exports play session counters for Prometheus.
package metrics

import (
	"net/http"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fourk"

// frameBuckets are in seconds, centred on a 1ms frame.
var frameBuckets = []float64{.0001, .00025, .0005, .001, .002, .004, .008, .016, .032}

type Manager struct {
	gatherer prometheus.Gatherer

	judgements    *prometheus.CounterVec
	combo         prometheus.Gauge
	maxCombo      prometheus.Gauge
	score         prometheus.Gauge
	frameDuration prometheus.Histogram
	sessions      prometheus.Counter
}

// NewManager registers every metric on reg. A nil reg uses a private
// registry.
func NewManager(reg *prometheus.Registry) *Manager {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	auto := promauto.With(reg)
	return &Manager{
		gatherer: reg,
		judgements: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "judgements_total",
			Help:      "Judgements made, by tier",
		}, []string{"tier"}),
		combo: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "combo",
			Help:      "Current combo",
		}),
		maxCombo: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_combo",
			Help:      "Highest combo of the session",
		}),
		score: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Current total score",
		}),
		frameDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent ticking and drawing one frame",
			Buckets:   frameBuckets,
		}),
		sessions: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Sessions started, retries included",
		}),
	}
}

func (m *Manager) Judged(tier game.Tier) {
	m.judgements.WithLabelValues(tier.String()).Inc()
}

func (m *Manager) Frame(d time.Duration) {
	m.frameDuration.Observe(d.Seconds())
}

func (m *Manager) SessionStarted() {
	m.sessions.Inc()
}

func (m *Manager) Progress(combo, maxCombo int, score float64) {
	m.combo.Set(float64(combo))
	m.maxCombo.Set(float64(maxCombo))
	m.score.Set(score)
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
