package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "deepbark"

var (
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route, method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	classifierRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifier_requests_total",
		Help:      "Image analysis requests forwarded to the classifier, by outcome.",
	}, []string{"outcome"})

	predictedBreeds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predicted_breeds_total",
		Help:      "Top predictions returned to clients, by English breed label.",
	}, []string{"breed"})
)

// Middleware records request latency. Unmatched routes are grouped under their status to bound cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			httpRequestDuration.WithLabelValues(route, c.Request().Method, strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func ObserveClassification(outcome string, topBreed string) {
	classifierRequests.WithLabelValues(outcome).Inc()
	if topBreed != "" {
		predictedBreeds.WithLabelValues(topBreed).Inc()
	}
}
