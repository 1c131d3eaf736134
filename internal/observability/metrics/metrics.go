// Package metrics expone las métricas Prometheus de las ejecuciones de facturación.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	appbilling "github.com/jhoicas/energy-billing/internal/application/billing"
)

var _ appbilling.RunObserver = (*Billing)(nil)

const namespace = "billing"

// Billing métricas de facturación registradas en un Registerer concreto.
type Billing struct {
	runs      *prometheus.CounterVec
	generated prometheus.Counter
	skipped   prometheus.Counter
	failures  *prometheus.CounterVec
	documents *prometheus.CounterVec
	duration  prometheus.Histogram
}

// New registra las métricas en reg. Con reg nil se usa prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Billing {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Billing{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Ejecuciones de facturación por resultado",
		}, []string{"result"}),
		generated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_generated_total",
			Help:      "Facturas generadas",
		}),
		skipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contracts_skipped_total",
			Help:      "Contratos omitidos por tener ya factura en el periodo",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_failures_total",
			Help:      "Contratos que no pudieron facturarse, por motivo",
		}, []string{"reason"}),
		documents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "PDFs archivados durante las ejecuciones, por resultado",
		}, []string{"result"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duración de las ejecuciones de facturación",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObserveRun registra el resultado y la duración de una ejecución.
func (b *Billing) ObserveRun(result string, elapsed time.Duration) {
	b.runs.WithLabelValues(result).Inc()
	b.duration.Observe(elapsed.Seconds())
}

// InvoiceGenerated cuenta una factura nueva.
func (b *Billing) InvoiceGenerated() { b.generated.Inc() }

// ContractSkipped cuenta un contrato ya facturado.
func (b *Billing) ContractSkipped() { b.skipped.Inc() }

// ContractFailed cuenta un fallo por contrato.
func (b *Billing) ContractFailed(reason string) { b.failures.WithLabelValues(reason).Inc() }

// DocumentArchived cuenta un PDF archivado (ok=false si falló).
func (b *Billing) DocumentArchived(ok bool) {
	if ok {
		b.documents.WithLabelValues(appbilling.ResultSuccess).Inc()
		return
	}
	b.documents.WithLabelValues(appbilling.ResultError).Inc()
}
