package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the request correlation ID in and out of the service.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the key used to store the request ID in the Gin and request contexts.
const requestIDKey = contextKey("requestID")

// GetRequestIDFromContext retrieves the request ID from the Gin context.
// It returns the request ID and a boolean indicating if it was found.
func GetRequestIDFromContext(c *gin.Context) (string, bool) {
	requestIDVal, exists := c.Get(string(requestIDKey))
	if !exists {
		// check in the request context as well
		return GetRequestID(c.Request.Context())
	}

	requestID, ok := requestIDVal.(string)
	return requestID, ok
}

// GetRequestID retrieves the request ID from a request context.
func GetRequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok && requestID != ""
}
