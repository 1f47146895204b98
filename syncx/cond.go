package syncx

// Cond is a condition variable bound to a Locker for its whole lifetime.
//
// Wakeups carry no information about the condition, so callers wait in a loop:
//
//	c.Locker().Lock()
//	for !condition() {
//		c.Wait()
//	}
//	// use condition
//	c.Locker().Unlock()
type Cond struct {
	l Locker

	// guard protects waiters; it is never held while blocking.
	guard   Mutex
	waiters []chan struct{}
}

// NewCond returns a Cond bound to l.
func NewCond(l Locker) *Cond {
	return &Cond{l: l}
}

// Locker returns the lock c is bound to.
func (c *Cond) Locker() Locker { return c.l }

// Wait atomically unlocks c's Locker and suspends the calling goroutine until
// Signal or Broadcast wakes it, then locks the Locker again before returning.
// The caller must hold the Locker.
func (c *Cond) Wait() {
	if h, ok := c.l.(interface{ Locked() bool }); ok && !h.Locked() {
		fatal(ErrWaitWithoutLock)
	}

	// Enqueue before unlocking: a Signal issued after the caller released the
	// lock always finds this waiter.
	ready := make(chan struct{})
	c.guard.Lock()
	c.waiters = append(c.waiters, ready)
	c.guard.Unlock()

	c.l.Unlock()
	<-ready
	c.l.Lock()
}

// Signal wakes one goroutine waiting on c, if there is any.
func (c *Cond) Signal() {
	c.guard.Lock()
	if len(c.waiters) == 0 {
		c.guard.Unlock()
		return
	}
	ready := c.waiters[0]
	c.waiters[0] = nil
	c.waiters = c.waiters[1:]
	c.guard.Unlock()
	close(ready)
}

// Broadcast wakes all goroutines waiting on c.
func (c *Cond) Broadcast() {
	c.guard.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.guard.Unlock()
	for _, ready := range waiters {
		close(ready)
	}
}

// waiting returns the number of parked goroutines.
func (c *Cond) waiting() int {
	c.guard.Lock()
	defer c.guard.Unlock()
	return len(c.waiters)
}

// bind sets the Locker of a zero Cond embedded in another primitive.
// It must be called with l held.
func (c *Cond) bind(l Locker) {
	if c.l == nil {
		c.l = l
	}
}
