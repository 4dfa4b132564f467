package server

import "github.com/prometheus/client_golang/prometheus"

type serverMetrics struct {
	predictions *prometheus.CounterVec
	sessions    prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer, store *sessionStore) (*serverMetrics, error) {
	m := &serverMetrics{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Form submissions by kind (sensitivity, detection) and outcome (ok, error, invalid).",
		}, []string{"kind", "outcome"}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Browser sessions created.",
		}),
	}
	active := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Sessions currently held in memory.",
	}, func() float64 { return float64(store.len()) })

	for _, c := range []prometheus.Collector{m.predictions, m.sessions, active} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
