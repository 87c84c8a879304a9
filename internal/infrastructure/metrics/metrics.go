// Package metrics expone las métricas Prometheus de la API y de facturación.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/invoice-generator/internal/application/billing"
)

var _ billing.InvoiceMetrics = (*Metrics)(nil)

// Metrics colectores de la aplicación sobre un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	invoicesCreated *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	renderFailures  prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registra los colectores con el namespace dado (ej. "invoicegen").
// Incluye los colectores de proceso y del runtime de Go.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invoicesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Facturas procesadas por resultado (ok | error).",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_pdf_render_duration_seconds",
			Help:      "Tiempo de generación del PDF de factura.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_pdf_render_failures_total",
			Help:      "Generaciones de PDF fallidas.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
		m.invoicesCreated,
		m.renderDuration,
		m.renderFailures,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler handler HTTP para /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InvoiceCreated cuenta una creación de factura.
func (m *Metrics) InvoiceCreated(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.invoicesCreated.WithLabelValues(result).Inc()
}

// PDFRendered observa la duración de un render; los fallos se cuentan aparte.
func (m *Metrics) PDFRendered(d time.Duration, err error) {
	if err != nil {
		m.renderFailures.Inc()
		return
	}
	m.renderDuration.Observe(d.Seconds())
}

// Middleware mide cada petición con la ruta registrada (ej. /api/invoices/view/:id), no la URL
// concreta, para no disparar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		// Sin ruta propia queda la del middleware ("/"): se agrupa como unmatched.
		route := c.Route().Path
		if route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		method := c.Method()
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
