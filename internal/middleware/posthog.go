package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// EventTracker is the analytics sink used by PosthogMiddleware.
// *utils.PosthogClientWrapper satisfies it.
type EventTracker interface {
	IsInitialized() bool
	Enqueue(distinctId string, event string, properties map[string]any)
}

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog.
// Events are keyed by client IP; identity numbers in path parameters are never sent.
func PosthogMiddleware(tracker EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if tracker == nil || !tracker.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		eventName := EventNameForRoute(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if requestID, ok := GetRequestIDFromContext(c); ok {
			props["request_id"] = requestID
		}

		tracker.Enqueue(c.ClientIP(), eventName, props)
	}
}

// EventNameForRoute turns a route template into an event name,
// e.g. "/api/accounts/:pesel/transfer" -> "api_accounts_pesel_transfer".
func EventNameForRoute(route string) string {
	name := strings.TrimPrefix(route, "/")
	name = strings.ReplaceAll(name, ":", "")
	return strings.ReplaceAll(name, "/", "_")
}
