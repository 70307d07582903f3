package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// InitMetrics builds the HTTP metrics collector for serviceName, registered on reg.
// Passing a fresh registry keeps tests from colliding on the default one.
func InitMetrics(serviceName string, reg prometheus.Registerer) *fiberprometheus.FiberPrometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	prom := fiberprometheus.NewWithRegistry(reg, serviceName, "http", "", nil)
	prom.SetSkipPaths([]string{"/metrics", "/health/live", "/health/ready"})
	return prom
}

// MetricsMiddleware records request count, latency and in-flight gauges.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
