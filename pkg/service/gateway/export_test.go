package gateway

// Export internal functions for testing
var (
	IsRetryable = isRetryable
)
