package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts failed Redis commands by command name. Incremented by
// the cache package's client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quill_redis_errors_total",
	Help: "Total number of failed Redis commands.",
}, []string{"command"})

// AssetCleanupFailures counts best-effort asset deletions that failed and
// were logged instead of aborting the request.
var AssetCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "quill_asset_cleanup_failures_total",
	Help: "Total number of best-effort asset deletions that failed.",
})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
