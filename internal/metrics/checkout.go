package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type CheckoutMetrics struct {
	finalized      *prometheus.CounterVec
	commitFailures prometheus.Counter
	rejected       *prometheus.CounterVec
	commitDuration prometheus.Histogram
	inHouseBalance prometheus.Gauge
	inHouseGuests  prometheus.Gauge
}

var (
	checkoutOnce     sync.Once
	checkoutRegistry *CheckoutMetrics
)

// Checkout returns the process-wide checkout metrics, registering them on first use.
func Checkout() *CheckoutMetrics {
	checkoutOnce.Do(func() {
		checkoutRegistry = &CheckoutMetrics{
			finalized: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "frontdesk_checkout_finalized_total",
				Help: "Count of finalized checkouts by resulting room status.",
			}, []string{"room_status"}),
			commitFailures: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "frontdesk_checkout_commit_failures_total",
				Help: "Number of checkout commits that failed or timed out.",
			}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "frontdesk_checkout_rejected_total",
				Help: "Operator actions rejected by the checkout coordinator, by reason.",
			}, []string{"reason"}),
			commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
				Name:    "frontdesk_checkout_commit_seconds",
				Help:    "Duration of the checkout commit against room inventory and history.",
				Buckets: prometheus.DefBuckets,
			}),
			inHouseBalance: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "frontdesk_in_house_balance_cents",
				Help: "Outstanding balance of all in-house guests at the last night audit.",
			}),
			inHouseGuests: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "frontdesk_in_house_guests",
				Help: "Number of in-house guests at the last night audit.",
			}),
		}
		prometheus.MustRegister(
			checkoutRegistry.finalized,
			checkoutRegistry.commitFailures,
			checkoutRegistry.rejected,
			checkoutRegistry.commitDuration,
			checkoutRegistry.inHouseBalance,
			checkoutRegistry.inHouseGuests,
		)
	})
	return checkoutRegistry
}

func (m *CheckoutMetrics) ObserveFinalized(roomStatus string) {
	if m == nil {
		return
	}
	if roomStatus == "" {
		roomStatus = "unknown"
	}
	m.finalized.WithLabelValues(roomStatus).Inc()
}

func (m *CheckoutMetrics) ObserveCommitFailure() {
	if m == nil {
		return
	}
	m.commitFailures.Inc()
}

func (m *CheckoutMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *CheckoutMetrics) ObserveCommitDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.commitDuration.Observe(d.Seconds())
}

func (m *CheckoutMetrics) SetInHouse(guests int, balanceCents int64) {
	if m == nil {
		return
	}
	m.inHouseGuests.Set(float64(guests))
	m.inHouseBalance.Set(float64(balanceCents))
}
