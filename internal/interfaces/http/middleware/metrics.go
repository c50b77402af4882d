package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count, latency and in-flight requests per route
// template, so path parameters do not inflate label cardinality.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		inFlight := m.HTTPInFlight.WithLabelValues(route)
		inFlight.Inc()
		start := time.Now()

		c.Next()

		inFlight.Dec()
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// BodyLimit caps request bodies at n bytes.  Reads past the limit fail and
// surface as a bad payload.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

//Personal.AI order the ending
