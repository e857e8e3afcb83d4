package interaction

import (
	"sync"
)

// outcome is the resolution of one pending reply: the result values or
// the failure, never both.
type outcome struct {
	values []string
	err    error
}

// pendingTable maps correlation ids to one-shot completion channels.
// It is the only structure mutated by both the read loop and invoking
// callers, so every operation holds the one mutex across the whole
// lookup-remove-complete sequence.
type pendingTable struct {
	mu      sync.Mutex
	entries map[uint64]chan outcome
	drained bool
}

func newPendingTable() *pendingTable {
	return &pendingTable{
		entries: make(map[uint64]chan outcome),
	}
}

// register stores a fresh one-shot slot under id and returns its
// receiving end. Ids are never reused, so a collision cannot happen;
// registering after drain returns false and no slot.
func (t *pendingTable) register(id uint64) (<-chan outcome, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.drained {
		return nil, false
	}

	// Buffered so the read loop never blocks on a completion, even if
	// the waiting caller already gave up.
	ch := make(chan outcome, 1)
	t.entries[id] = ch
	return ch, true
}

// resolve removes and completes the slot for id. It reports false if no
// such id is registered (already resolved, never registered, or
// superseded by teardown) - not an error, just a signal to log and
// continue.
func (t *pendingTable) resolve(id uint64, out outcome) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch, ok := t.entries[id]
	if !ok {
		return false
	}
	delete(t.entries, id)
	ch <- out
	return true
}

// remove discards the slot for id without completing it. Used when the
// registering caller abandons the wait (context cancelled) or its
// transmission failed after registration.
func (t *pendingTable) remove(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// drain resolves every remaining entry with err and marks the table
// terminal. Later register calls fail and later resolves report false.
func (t *pendingTable) drain(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.drained = true
	for id, ch := range t.entries {
		delete(t.entries, id)
		ch <- outcome{err: err}
	}
}

// size reports the number of unresolved entries.
func (t *pendingTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
