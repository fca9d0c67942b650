package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bincc/bincc/internal/logging"
)

const (
	OutcomeSupported   = "supported"
	OutcomeUnsupported = "unsupported"

	brandNone = "none"
)

type Metrics struct {
	lookupsTotal   *prometheus.CounterVec
	cvvChecksTotal *prometheus.CounterVec
	luhnTotal      *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bincc_lookups_total", Help: "Total brand lookups"},
			[]string{"brand", "outcome"},
		),
		cvvChecksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bincc_cvv_checks_total", Help: "Total CVV checks"},
			[]string{"brand", "result"},
		),
		luhnTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "bincc_luhn_checks_total", Help: "Total Luhn checks"},
			[]string{"result"},
		),
		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bincc_lookup_duration_seconds",
				Help:    "Lookup duration in seconds",
				Buckets: []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 1e-2},
			},
			[]string{"op"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.lookupsTotal,
		m.cvvChecksTotal,
		m.luhnTotal,
		m.lookupDuration,
	)

	return m
}

// Observe records one lookup. A nil Metrics is a no-op so callers need not
// check whether metrics are enabled.
func (m *Metrics) Observe(lookup logging.Lookup) {
	if m == nil {
		return
	}

	brand := lookup.Brand
	if brand == "" {
		brand = brandNone
	}

	switch lookup.Operation {
	case logging.OpCVV:
		if lookup.CVVValid != nil {
			m.cvvChecksTotal.WithLabelValues(brand, result(*lookup.CVVValid)).Inc()
		}
	default:
		outcome := OutcomeUnsupported
		if lookup.Supported {
			outcome = OutcomeSupported
		}
		m.lookupsTotal.WithLabelValues(brand, outcome).Inc()
	}

	if lookup.Luhn != nil {
		m.luhnTotal.WithLabelValues(result(*lookup.Luhn)).Inc()
	}

	duration := time.Duration(lookup.DurationUS) * time.Microsecond
	m.lookupDuration.WithLabelValues(lookup.Operation).Observe(duration.Seconds())
}

// WriteTextfile writes everything gathered from g in the format read by the
// node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func result(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}
