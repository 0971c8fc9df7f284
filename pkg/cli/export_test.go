package cli

// PrintFilterSets is exported for testing
var PrintFilterSets = printFilterSets
