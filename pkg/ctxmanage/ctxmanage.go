package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type key string

// TraceIdKey is the request context key under which the middleware stores
// the per-request trace id.
const TraceIdKey key = "1"

// GetTraceIdOfRequest returns the trace id set by the logging middleware.
// If the middleware did not run we still return a fresh id so log lines
// are never missing one.
func GetTraceIdOfRequest(c *gin.Context) string {
	ctx := c.Request.Context()
	traceId, ok := ctx.Value(TraceIdKey).(string)
	if !ok {
		return uuid.NewString()
	}
	return traceId
}
