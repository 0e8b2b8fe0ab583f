package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Métricas Prometheus del servicio. movementsRecorded cuenta los movimientos
// confirmados por tipo (IN/OUT).
var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almacen_http_requests_total",
			Help: "Total de peticiones HTTP atendidas",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "almacen_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	movementsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almacen_movements_recorded_total",
			Help: "Movimientos de inventario confirmados, por tipo",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(requestCounter, requestDuration, movementsRecorded)
}

// MetricsMiddleware observa contador y latencia por ruta registrada.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		requestCounter.WithLabelValues(method, path, status).Inc()
		requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}

// MetricsHandler expone /metrics en formato Prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
