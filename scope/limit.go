package scope

import (
	"context"

	"github.com/NetPo4ki/go-syncx/syncx"
)

// Limiter bounds concurrent tasks within a scope.
type Limiter interface {
	Acquire(ctx context.Context) error
	Release()
}

// semLimiter is a counting semaphore on a mutex and condition variable.
type semLimiter struct {
	mu    syncx.Mutex
	freed *syncx.Cond
	held  int
	max   int
}

func newSemaphoreLimiter(n int) Limiter {
	if n <= 0 {
		return nil
	}
	l := &semLimiter{max: n}
	l.freed = syncx.NewCond(&l.mu)
	return l
}

func (l *semLimiter) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.freed.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	l.mu.Lock()
	defer l.mu.Unlock()
	for l.held >= l.max {
		if err := ctx.Err(); err != nil {
			// Pass on a wakeup this waiter may have consumed.
			l.freed.Signal()
			return err
		}
		l.freed.Wait()
	}
	l.held++
	return nil
}

func (l *semLimiter) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == 0 {
		return
	}
	l.held--
	l.freed.Signal()
}
