package logkey

// Common keys for structured log attributes so log queries stay consistent
// across handlers.
const (
	TraceID = "TRACE ID"
	ERROR   = "ERROR"
)
