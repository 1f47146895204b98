package syncx

// WaitGroup waits for a collection of goroutines to finish. The counter
// starts at zero; Wait blocks while it is positive. A WaitGroup may be reused
// once Wait has returned.
type WaitGroup struct {
	mu   Mutex
	zero Cond
	n    int
}

// Add adds delta, which may be negative, to the counter. When the counter
// reaches zero every goroutine blocked in Wait is released. Add panics with
// ErrNegativeCounter if the counter goes below zero; waiters are released
// before the panic.
func (wg *WaitGroup) Add(delta int) {
	wg.mu.Lock()
	wg.zero.bind(&wg.mu)
	wg.n += delta
	n := wg.n
	if n <= 0 {
		wg.zero.Broadcast()
	}
	wg.mu.Unlock()
	if n < 0 {
		fatal(ErrNegativeCounter)
	}
}

// Done decrements the counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait blocks until the counter is zero.
func (wg *WaitGroup) Wait() {
	wg.mu.Lock()
	wg.zero.bind(&wg.mu)
	for wg.n > 0 {
		wg.zero.Wait()
	}
	wg.mu.Unlock()
}

// Go calls f in a new goroutine and adds that task to the group.
func (wg *WaitGroup) Go(f func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		f()
	}()
}
