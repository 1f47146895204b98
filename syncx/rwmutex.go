package syncx

// RWMutex is a reader/writer mutual exclusion lock. It can be held by any
// number of readers or by a single writer. The zero value is unlocked.
//
// A goroutine waiting in Lock keeps new readers out until it has acquired
// and released the lock, so a reader must not call RLock recursively.
type RWMutex struct {
	mu Mutex

	canRead  Cond
	canWrite Cond

	readers        int
	writer         bool
	writersWaiting int
}

var _ Locker = (*RWMutex)(nil)

func (rw *RWMutex) lock() {
	rw.mu.Lock()
	rw.canRead.bind(&rw.mu)
	rw.canWrite.bind(&rw.mu)
}

// RLock locks rw for reading.
func (rw *RWMutex) RLock() {
	rw.lock()
	for rw.writer || rw.writersWaiting > 0 {
		rw.canRead.Wait()
	}
	rw.readers++
	rw.mu.Unlock()
}

// RUnlock undoes a single RLock call. It panics with ErrRUnlockOfUnlocked if
// rw is not read-locked.
func (rw *RWMutex) RUnlock() {
	rw.lock()
	if rw.readers == 0 {
		rw.mu.Unlock()
		fatal(ErrRUnlockOfUnlocked)
	}
	rw.readers--
	if rw.readers == 0 {
		rw.canWrite.Signal()
	}
	rw.mu.Unlock()
}

// Lock locks rw for writing, blocking until no reader or writer holds it.
func (rw *RWMutex) Lock() {
	rw.lock()
	rw.writersWaiting++
	for rw.writer || rw.readers > 0 {
		rw.canWrite.Wait()
	}
	rw.writersWaiting--
	rw.writer = true
	rw.mu.Unlock()
}

// Unlock unlocks rw for writing. It panics with ErrUnlockOfUnlocked if rw is
// not write-locked.
func (rw *RWMutex) Unlock() {
	rw.lock()
	if !rw.writer {
		rw.mu.Unlock()
		fatal(ErrUnlockOfUnlocked)
	}
	rw.writer = false
	if rw.writersWaiting > 0 {
		rw.canWrite.Signal()
	} else {
		rw.canRead.Broadcast()
	}
	rw.mu.Unlock()
}

// Locked reports whether rw is held for writing.
func (rw *RWMutex) Locked() bool {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.writer
}

// RLocker returns a Locker whose Lock and Unlock call RLock and RUnlock.
func (rw *RWMutex) RLocker() Locker {
	return (*rlocker)(rw)
}

type rlocker RWMutex

func (r *rlocker) Lock()   { (*RWMutex)(r).RLock() }
func (r *rlocker) Unlock() { (*RWMutex)(r).RUnlock() }
