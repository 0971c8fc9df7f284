package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

// SetCacheClock replaces the clock of a FilterCache for testing
func SetCacheClock(c *FilterCache, now func() time.Time) {
	c.now = now
}

// SetExportClock replaces the clock of an ExportUseCase for testing
func SetExportClock(uc *ExportUseCase, now func() time.Time) {
	uc.now = now
}

// MatchesItemNumber is exported for testing
var MatchesItemNumber = matchesItemNumber

// SetSearchClock replaces the clock of a SearchUseCase for testing
func SetSearchClock(uc *SearchUseCase, now func() time.Time) {
	uc.now = now
}

// StoredResultCount returns how many results a SearchUseCase holds
func StoredResultCount(uc *SearchUseCase) int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.results)
}

// BeginSearch registers a search on the sequencer of uc
func BeginSearch(uc *SearchUseCase, session string, screen types.Screen) (context.Context, uint64, func()) {
	return uc.seq.begin(context.Background(), sequenceKey{session: session, screen: screen})
}
