package observability

import (
	"context"
	"time"

	"github.com/aretw0/menubot/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "menubot"

// Metrics holds the bot's Prometheus collectors.
type Metrics struct {
	Turns             *prometheus.CounterVec
	ItemsAdded        *prometheus.CounterVec
	Orders            *prometheus.CounterVec
	OrderValue        prometheus.Histogram
	InvalidSelections prometheus.Counter
	StoreDuration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Inbound turns by activity kind.",
		}, []string{"kind"}),
		ItemsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Menu items added to carts.",
		}, []string{"item"}),
		Orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_total",
			Help:      "Finished orders by outcome.",
		}, []string{"outcome"}),
		OrderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_value",
			Help:      "Cart total of checked out orders.",
			Buckets:   []float64{5, 10, 20, 50, 100, 250},
		}),
		InvalidSelections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_selections_total",
			Help:      "Turns whose text matched no choice.",
		}),
		StoreDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Latency of session store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Turns, m.ItemsAdded, m.Orders, m.OrderValue, m.InvalidSelections, m.StoreDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			m.Turns.WithLabelValues(string(e.Kind)).Inc()
		},
		OnItemAdded: func(_ context.Context, e *domain.CartEvent) {
			m.ItemsAdded.WithLabelValues(e.Item).Inc()
		},
		OnCheckout: func(_ context.Context, e *domain.CartEvent) {
			m.Orders.WithLabelValues("checkout").Inc()
			m.OrderValue.Observe(e.Total.InexactFloat64())
		},
		OnCancel: func(_ context.Context, _ *domain.CartEvent) {
			m.Orders.WithLabelValues("cancel").Inc()
		},
		OnInvalidSelection: func(_ context.Context, _ *domain.SelectionEvent) {
			m.InvalidSelections.Inc()
		},
	}
}

// ObserveStore records one store call. err decides the result label.
func (m *Metrics) ObserveStore(op string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StoreDuration.WithLabelValues(op, result).Observe(time.Since(started).Seconds())
}
