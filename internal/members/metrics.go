package members

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics считает загрузки списка и действия над строками.
// Нулевой указатель допустим: счётчики просто не ведутся.
type Metrics struct {
	loads   *prometheus.CounterVec
	actions *prometheus.CounterVec
}

// NewMetrics регистрирует счётчики в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "members_roster_loads_total",
			Help: "Roster loads by result.",
		}, []string{"result"}),
		actions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "members_row_actions_total",
			Help: "Confirmed row actions by action and result.",
		}, []string{"action", "result"}),
	}
}

func (m *Metrics) load(ok bool) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) action(action string, ok bool) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
