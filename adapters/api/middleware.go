package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edascope/ports"
)

const (
	requestIDKey = "eda_request_id"
	logExtrasKey = "eda_log_extras"
)

// requestLogging assigns every request a generated identifier and, after the
// handler finishes, emits one structured entry with endpoint, status, and
// latency. Handlers attach endpoint-specific fields via logExtra.
func (s *Server) requestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		entry := ports.RequestEntry{
			RequestID: requestID,
			Endpoint:  c.Request.URL.Path,
			Status:    c.Writer.Status(),
			LatencyMS: float64(time.Since(start).Microseconds()) / 1000.0,
		}
		if extras, ok := c.Get(logExtrasKey); ok {
			entry.Extra = extras.(map[string]interface{})
		}
		s.logger.LogRequest(entry)
	}
}

// logExtra records one endpoint-specific field on the request's log entry.
func logExtra(c *gin.Context, key string, value interface{}) {
	var extras map[string]interface{}
	if existing, ok := c.Get(logExtrasKey); ok {
		extras = existing.(map[string]interface{})
	} else {
		extras = make(map[string]interface{})
		c.Set(logExtrasKey, extras)
	}
	extras[key] = value
}
