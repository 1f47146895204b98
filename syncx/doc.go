// Package syncx provides mutual exclusion and signaling primitives built on
// condition variables: Mutex, Cond, RWMutex, WaitGroup and Once.
//
// Every primitive is safe for concurrent use and its zero value is ready to
// use, except Cond which must be bound to a Locker with NewCond. Misuse that
// can be detected cheaply (unlocking an unlocked mutex, a negative WaitGroup
// counter, waiting on a Cond without holding its lock) panics with an error
// wrapping one of the package's sentinel errors.
//
// Building with -tags deadlock backs Mutex with github.com/sasha-s/go-deadlock.
package syncx
