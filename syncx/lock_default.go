//go:build !deadlock

package syncx

import "sync"

// platformMutex is the lock Mutex delegates to.
// Build with -tags deadlock to swap in go-deadlock.
type platformMutex = sync.Mutex

// DeadlockDetection reports whether Mutex is backed by go-deadlock.
const DeadlockDetection = false
