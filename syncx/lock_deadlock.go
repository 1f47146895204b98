//go:build deadlock

package syncx

import deadlock "github.com/sasha-s/go-deadlock"

type platformMutex = deadlock.Mutex

// DeadlockDetection reports whether Mutex is backed by go-deadlock.
const DeadlockDetection = true
