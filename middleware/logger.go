package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// SlowRequestThreshold marks requests worth a second look in the logs
const SlowRequestThreshold = 200 * time.Millisecond

const requestIDKey = "request_id"

// RequestLogger tags every request with an id and logs one line when it finishes
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		slow := ""
		if latency > SlowRequestThreshold {
			slow = " SLOW"
		}
		subject := c.GetString(subjectKey)
		if subject == "" {
			subject = "-"
		}

		log.Printf("[%s] %s %s %d %s sub=%s%s",
			requestID, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency, subject, slow)
		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", requestID, e.Err)
		}
	}
}

// GetRequestID returns the id assigned by RequestLogger, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
