package syncx

import (
	"errors"
	"fmt"
)

var (
	// ErrUnlockOfUnlocked indicates Unlock was called on a lock that is not held.
	ErrUnlockOfUnlocked = errors.New("unlock of unlocked mutex")

	// ErrRUnlockOfUnlocked indicates RUnlock was called without a matching RLock.
	ErrRUnlockOfUnlocked = errors.New("runlock of unlocked rwmutex")

	// ErrNegativeCounter indicates a WaitGroup counter dropped below zero.
	ErrNegativeCounter = errors.New("negative WaitGroup counter")

	// ErrWaitWithoutLock indicates Cond.Wait was called without holding the bound lock.
	ErrWaitWithoutLock = errors.New("cond wait without holding lock")
)

func fatal(err error) {
	panic(fmt.Errorf("syncx: %w", err))
}
