package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ResourceParam is the route parameter naming the resource on /api/v1/:model routes.
const ResourceParam = "model"

type httpMetrics struct {
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// HTTPMetricsMiddleware records request counts and durations labelled with
// method, route pattern, status code and, on resource routes, the resource name.
// Unmatched routes and unknown resources are labelled "unknown" to bound cardinality.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return passthrough
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return passthrough
	}

	m := &httpMetrics{
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		opt := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", routePattern(c.FullPath())),
			attribute.String("resource", resourceLabel(c, status)),
			attribute.String("status_code", strconv.Itoa(status)),
		)

		m.requestCounter.Add(c.Request.Context(), 1, opt)
		m.durationHisto.Record(c.Request.Context(), time.Since(start).Seconds(), opt)
	}
}

func passthrough(c *gin.Context) {
	c.Next()
}

// routePattern returns the matched route pattern, or "unknown" for unmatched requests.
func routePattern(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

// resourceLabel returns the :model segment of resource routes. A 404 may be
// an unregistered resource name, so it is never used as a label value.
func resourceLabel(c *gin.Context, status int) string {
	resource := c.Param(ResourceParam)
	if resource == "" {
		return ""
	}
	if status == http.StatusNotFound {
		return "unknown"
	}
	return resource
}
