package syncx

import "sync/atomic"

// Once performs exactly one action.
type Once struct {
	done atomic.Bool
	m    Mutex
}

// Do calls f if and only if Do is being called for the first time on this
// Once. Every call returns only after that single call of f has returned.
//
// If f panics, Do considers it returned: the panic reaches the caller that
// ran f and later calls of Do return without calling f.
func (o *Once) Do(f func()) {
	if o.done.Load() {
		return
	}
	o.doSlow(f)
}

func (o *Once) doSlow(f func()) {
	o.m.Lock()
	defer o.m.Unlock()
	if !o.done.Load() {
		defer o.done.Store(true)
		f()
	}
}

// Done reports whether the action has already run.
func (o *Once) Done() bool {
	return o.done.Load()
}

// OnceValue returns a function that calls f once and returns its result on
// every call. If f panics, the returned function panics with the same value
// on every call.
func OnceValue[T any](f func() T) func() T {
	var (
		once   Once
		result T
		p      any
		failed bool
	)
	g := func() {
		defer func() {
			if r := recover(); r != nil {
				p, failed = r, true
			}
		}()
		result = f()
		f = nil
	}
	return func() T {
		once.Do(g)
		if failed {
			panic(p)
		}
		return result
	}
}

// OnceValues is like OnceValue for functions that also return an error.
// The error is cached together with the value: a failing f is not retried.
func OnceValues[T any](f func() (T, error)) func() (T, error) {
	type result struct {
		v   T
		err error
	}
	get := OnceValue(func() result {
		v, err := f()
		return result{v: v, err: err}
	})
	return func() (T, error) {
		r := get()
		return r.v, r.err
	}
}
