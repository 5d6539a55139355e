package aausat

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the receiver has seen.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	windowsTotal      prometheus.Counter     // Windows offered to the trial decoder
	packetsTotal      *prometheus.CounterVec // Packets recovered (by geometry)
	failuresTotal     prometheus.Counter     // Windows where no geometry worked
	authFailuresTotal prometheus.Counter     // Packets dropped for a bad tag
	attemptsTotal     *prometheus.CounterVec // Geometry attempts (by geometry, outcome)
	bitCorrections    prometheus.Histogram   // Viterbi bit corrections per packet
	byteCorrections   prometheus.Histogram   // RS byte corrections per packet
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	var f = promauto.With(reg)

	return &Metrics{
		windowsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "aausat_windows_total",
			Help: "Candidate windows offered to the decoder",
		}),
		packetsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aausat_packets_total",
			Help: "Packets recovered, by frame geometry",
		}, []string{"geometry"}),
		failuresTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "aausat_decode_failures_total",
			Help: "Windows from which no packet was recovered",
		}),
		authFailuresTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "aausat_auth_failures_total",
			Help: "Packets discarded because the HMAC did not match",
		}),
		attemptsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aausat_attempts_total",
			Help: "Frame geometry attempts, by geometry and outcome",
		}, []string{"geometry", "outcome"}),
		bitCorrections: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "aausat_bit_corrections",
			Help:    "Bit errors corrected by the Viterbi decoder per packet",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		}),
		byteCorrections: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "aausat_byte_corrections",
			Help:    "Byte errors corrected by the Reed-Solomon decoder per packet",
			Buckets: []float64{0, 1, 2, 4, 8, 12, 16},
		}),
	}
}

// Short label for an attempt outcome.

func attemptOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrGeometryMismatch):
		return "short_window"
	case errors.Is(err, ErrUncorrectable):
		return "uncorrectable"
	case errors.Is(err, ErrMalformedSize):
		return "bad_size"
	case errors.Is(err, ErrAuthentication):
		return "bad_tag"
	default:
		return "error"
	}
}

// Observe records the outcome of one trial decode.
func (m *Metrics) Observe(res Result, err error) {
	if m == nil {
		return
	}

	m.windowsTotal.Inc()

	for _, a := range res.Attempts {
		m.attemptsTotal.WithLabelValues(a.Geometry.Name, attemptOutcome(a.Err)).Inc()
	}

	if err != nil {
		m.failuresTotal.Inc()
		if errors.Is(err, ErrAuthentication) {
			m.authFailuresTotal.Inc()
		}
		return
	}

	m.packetsTotal.WithLabelValues(res.Geometry.Name).Inc()
	m.bitCorrections.Observe(float64(res.BitCorrections))
	m.byteCorrections.Observe(float64(res.ByteCorrections))
}
