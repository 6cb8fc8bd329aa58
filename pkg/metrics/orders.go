package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderFlowMetrics records outcomes of order lifecycle transitions.
type OrderFlowMetrics struct {
	transitions *prometheus.CounterVec
	boardHits   *prometheus.CounterVec
}

// NewOrderFlowMetrics registers the order flow metrics on the provided registerer.
func NewOrderFlowMetrics(reg prometheus.Registerer) *OrderFlowMetrics {
	if reg == nil {
		return &OrderFlowMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transitions_total",
		Help: "Order lifecycle transitions by event type and result.",
	}, []string{"event", "result"})
	boardHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kds_board_cache_total",
		Help: "Kitchen board cache lookups by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(transitions, boardHits)
	return &OrderFlowMetrics{
		transitions: transitions,
		boardHits:   boardHits,
	}
}

// IncTransition counts one transition attempt for the named event.
func (m *OrderFlowMetrics) IncTransition(event, result string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(event), normalizeLabel(result)).Inc()
}

// IncBoardCache counts one board cache lookup outcome (hit, miss, bypass).
func (m *OrderFlowMetrics) IncBoardCache(outcome string) {
	if m == nil || m.boardHits == nil {
		return
	}
	m.boardHits.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
