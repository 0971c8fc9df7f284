package slack

// Export internal functions and types for testing
var (
	// TestWithCacheTTL is exported for testing
	TestWithCacheTTL = WithCacheTTL

	// ExportTitle is exported for testing
	ExportTitle = exportTitle
)
