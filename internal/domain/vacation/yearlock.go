package vacation

import "sync"

// yearLocks serializes distribution runs per planning year. Occupancy
// counters are local to one run, so two concurrent runs for the same year
// would silently overbook; the second caller fails fast instead.
type yearLocks struct {
	mu   sync.Mutex
	held map[int]bool
}

func newYearLocks() *yearLocks {
	return &yearLocks{held: make(map[int]bool)}
}

func (l *yearLocks) acquire(year int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[year] {
		return false
	}
	l.held[year] = true
	return true
}

func (l *yearLocks) release(year int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, year)
}
