package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler serves the scrape endpoint for gatherer. A nil gatherer
// serves the default registry, which holds both the HTTP collectors and the
// provider generation metrics.
func MetricsHandler(gatherer prometheus.Gatherer) fiber.Handler {
	RegisterMetrics()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		// A failing collector should not hide the rest of the scrape.
		ErrorHandling: promhttp.ContinueOnError,
	}))
}
