// internal/scheduling/locks.go

package scheduling

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DayLocks serializes task writes per (worker, date). The validate-then-
// write sequence is not a single database transaction, so two concurrent
// requests booking the same worker into overlapping windows could both
// pass validation against the pre-write state. Holding the (worker, date)
// locks across validate+persist closes that gap for a single process;
// horizontal scaling needs a database-level constraint instead.
type DayLocks struct {
	mu      sync.Mutex
	entries map[string]*dayLock
}

type dayLock struct {
	mu   sync.Mutex
	refs int
}

func NewDayLocks() *DayLocks {
	return &DayLocks{entries: map[string]*dayLock{}}
}

// Acquire locks every (worker, date) key and returns the release func.
// Keys are deduplicated and locked in sorted order so two requests
// sharing a subset of workers can never deadlock.
func (d *DayLocks) Acquire(date time.Time, workerIDs []uuid.UUID) func() {
	day := DateOnly(date).Format(time.DateOnly)
	seen := map[string]bool{}
	keys := make([]string, 0, len(workerIDs))
	for _, id := range workerIDs {
		k := id.String() + "|" + day
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	locked := make([]*dayLock, 0, len(keys))
	for _, k := range keys {
		d.mu.Lock()
		e := d.entries[k]
		if e == nil {
			e = &dayLock{}
			d.entries[k] = e
		}
		e.refs++
		d.mu.Unlock()

		e.mu.Lock()
		locked = append(locked, e)
	}

	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].mu.Unlock()

			d.mu.Lock()
			locked[i].refs--
			if locked[i].refs == 0 {
				delete(d.entries, keys[i])
			}
			d.mu.Unlock()
		}
	}
}
