// Package middleware provides the cross-cutting HTTP concerns: request
// identification, access logging, panic recovery, and CORS.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the header carrying the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key the logging middleware reads.
const requestIDKey = "request_id"

// RequestID propagates a caller-supplied request identifier or assigns a
// fresh one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the identifier assigned by RequestID, or ""
// when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
