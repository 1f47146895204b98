package syncx

import "sync/atomic"

// Locker is an object that can be locked and unlocked.
// It has the same method set as sync.Locker.
type Locker interface {
	Lock()
	Unlock()
}

// Mutex is a mutual exclusion lock. The zero value is unlocked.
//
// A Mutex is not re-entrant: calling Lock twice from the same goroutine
// without an Unlock in between deadlocks. It is not associated with a
// goroutine, so one goroutine may Lock and another Unlock.
//
// A Mutex must not be copied after first use.
type Mutex struct {
	mu     platformMutex
	locked atomic.Bool
}

var _ Locker = (*Mutex)(nil)

// Lock acquires m, blocking until it is available.
func (m *Mutex) Lock() {
	m.mu.Lock()
	m.locked.Store(true)
}

// Unlock releases m. It panics with ErrUnlockOfUnlocked if m is not locked.
func (m *Mutex) Unlock() {
	if !m.locked.CompareAndSwap(true, false) {
		fatal(ErrUnlockOfUnlocked)
	}
	m.mu.Unlock()
}

// Locked reports whether m is currently held by someone.
// The answer may be stale by the time it is used; it is meant for assertions.
func (m *Mutex) Locked() bool {
	return m.locked.Load()
}
