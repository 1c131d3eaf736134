package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RegisterPoolStats publica el estado del pool de PostgreSQL como gauges calculados en cada scrape.
func RegisterPoolStats(reg prometheus.Registerer, pool *pgxpool.Pool) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	gauge := func(name, help string, v func(*pgxpool.Stat) float64) {
		f.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 { return v(pool.Stat()) })
	}
	gauge("total_conns", "Conexiones totales del pool", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) })
	gauge("idle_conns", "Conexiones ociosas", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) })
	gauge("acquired_conns", "Conexiones en uso", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) })
	gauge("max_conns", "Máximo de conexiones configurado", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) })
}
