package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/axiomcity/axiom-susu/pkg/logger"
)

// Logger 返回请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		traceID, _ := c.Get(TraceIDKey)

		args := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"latency", latency,
			"user_agent", c.Request.UserAgent(),
		}

		if tid, ok := traceID.(string); ok && tid != "" {
			args = append(args, "trace_id", tid)
		}

		if wallet, exists := c.Get(AdminWalletKey); exists {
			args = append(args, "wallet", wallet.(string))
		}

		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.Errors())
		}

		// 根据状态码选择日志级别
		switch {
		case status >= 500:
			logger.Error("request", args...)
		case status >= 400:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	}
}
