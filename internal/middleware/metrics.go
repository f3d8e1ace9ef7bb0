package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/internal/metrics"
)

// Metrics 返回 HTTP 指标采集中间件。
// path 标签使用路由模板而非原始 URL, 避免路径参数导致标签爆炸。
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
