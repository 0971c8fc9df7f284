package usecase

import (
	"context"
	"sync"

	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

type sequenceKey struct {
	session string
	screen  types.Screen
}

type sequenceEntry struct {
	seq    uint64
	cancel context.CancelFunc
}

// sequencer tags searches of a session and screen with a monotonically
// increasing number. Beginning a search cancels the previous one of the
// same key, and only the latest search may publish its result.
type sequencer struct {
	mu      sync.Mutex
	counter uint64
	latest  map[sequenceKey]*sequenceEntry
}

func newSequencer() *sequencer {
	return &sequencer{latest: make(map[sequenceKey]*sequenceEntry)}
}

// begin registers a new search and returns its context and number. The
// returned release func must be called when the search completes.
func (s *sequencer) begin(ctx context.Context, key sequenceKey) (context.Context, uint64, func()) {
	sctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	// numbered under the lock so registration order matches number order
	s.counter++
	seq := s.counter
	if prev, ok := s.latest[key]; ok {
		prev.cancel()
	}
	s.latest[key] = &sequenceEntry{seq: seq, cancel: cancel}
	s.mu.Unlock()

	release := func() {
		s.mu.Lock()
		if cur, ok := s.latest[key]; ok && cur.seq == seq {
			delete(s.latest, key)
		}
		s.mu.Unlock()
		cancel()
	}
	return sctx, seq, release
}

// publish runs fn while holding the lock if seq is still the latest
// search of key, and reports whether it did
func (s *sequencer) publish(key sequenceKey, seq uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.latest[key]
	if !ok || cur.seq != seq {
		return false
	}
	fn()
	return true
}
