package scope

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/NetPo4ki/go-syncx/syncx"
)

type Policy int

const (
	// FailFast cancels the scope on the first task error; Wait returns that error.
	FailFast Policy = iota
	// Supervisor lets sibling tasks run on; Wait returns every task error.
	Supervisor
)

type Option func(*Options)

type Options struct {
	PanicAsError   bool
	Observer       Observer
	MaxConcurrency int
}

func defaultOptions() Options { return Options{PanicAsError: true} }

func WithPanicAsError(v bool) Option { return func(o *Options) { o.PanicAsError = v } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

func WithMaxConcurrency(n int) Option { return func(o *Options) { o.MaxConcurrency = n } }

type Observer interface {
	ScopeCreated(ctx context.Context)
	ScopeCancelled(ctx context.Context, cause error)
	ScopeJoined(ctx context.Context, wait time.Duration)
	TaskStarted(ctx context.Context)
	TaskFinished(ctx context.Context, dur time.Duration, err error, panicked bool)
}

type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	policy Policy
	wg     syncx.WaitGroup

	mu         syncx.Mutex
	errs       *multierror.Error
	cancelOnce syncx.Once
	active     int

	opts Options
	obs  Observer
	lim  Limiter
}

func New(parent context.Context, policy Policy, optFns ...Option) *Scope {
	if parent == nil {
		parent = context.Background()
	}
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return newScope(parent, policy, opts)
}

func newScope(parent context.Context, policy Policy, opts Options) *Scope {
	ctx, cancel := context.WithCancel(parent)
	s := &Scope{ctx: ctx, cancel: cancel, policy: policy, opts: opts, obs: opts.Observer}
	s.lim = newSemaphoreLimiter(opts.MaxConcurrency)
	if s.obs != nil {
		s.obs.ScopeCreated(ctx)
	}
	return s
}

func (s *Scope) Context() context.Context { return s.ctx }

// SetLimit bounds the number of tasks of s running at once; n <= 0 removes
// the bound. It panics if tasks of s are still running.
func (s *Scope) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != 0 {
		panic(fmt.Errorf("scope: modify limit while %v tasks are active", s.active))
	}
	s.opts.MaxConcurrency = n
	s.lim = newSemaphoreLimiter(n)
}

// Go runs fn in a new goroutine owned by s.
func (s *Scope) Go(fn func(ctx context.Context) error) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.active++
	lim := s.lim
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.finish()
		if lim != nil {
			if err := lim.Acquire(s.ctx); err != nil {
				s.fail(err)
				return
			}
			defer lim.Release()
		}
		defer func() {
			if r := recover(); r != nil {
				if s.opts.PanicAsError {
					err := fmt.Errorf("panic: %v", r)
					s.fail(err)
					if s.obs != nil {
						s.obs.TaskFinished(s.ctx, 0, err, true)
					}
				} else {
					if s.obs != nil {
						s.obs.TaskFinished(s.ctx, 0, nil, true)
					}
					panic(r)
				}
			}
		}()

		var start time.Time
		if s.obs != nil {
			start = time.Now()
			s.obs.TaskStarted(s.ctx)
		}

		err := fn(s.ctx)
		if err != nil {
			s.fail(err)
		}
		if s.obs != nil {
			s.obs.TaskFinished(s.ctx, time.Since(start), err, false)
		}
	}()
}

// Cancel cancels the scope's context. The first non-nil cause is recorded
// and reported by Wait. Cancel is idempotent.
func (s *Scope) Cancel(err error) {
	s.mu.Lock()
	if s.errs == nil && err != nil {
		s.errs = multierror.Append(s.errs, err)
	}
	cause := s.firstErrLocked()
	s.mu.Unlock()

	s.cancelOnce.Do(func() {
		s.cancel()
		if s.obs != nil {
			s.obs.ScopeCancelled(s.ctx, cause)
		}
	})
}

// Wait blocks until every task of s has returned. Under FailFast it returns
// the first error; under Supervisor it returns all errors as a
// *multierror.Error, or nil.
func (s *Scope) Wait() error {
	var start time.Time
	if s.obs != nil {
		start = time.Now()
	}
	s.wg.Wait()
	if s.obs != nil {
		s.obs.ScopeJoined(s.ctx, time.Since(start))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.policy == Supervisor {
		return s.errs.ErrorOrNil()
	}
	return s.firstErrLocked()
}

func (s *Scope) firstErrLocked() error {
	if s.errs == nil || len(s.errs.Errors) == 0 {
		return nil
	}
	return s.errs.Errors[0]
}

func (s *Scope) finish() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

func (s *Scope) fail(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs = multierror.Append(s.errs, err)
	shouldCancel := s.policy == FailFast
	cause := s.firstErrLocked()
	s.mu.Unlock()
	if shouldCancel {
		s.Cancel(cause)
	}
}

// Child returns a scope whose context is derived from s. The child inherits
// the options of s, overridden by optFns, but is joined separately.
func (s *Scope) Child(policy Policy, optFns ...Option) *Scope {
	s.mu.Lock()
	childOpts := s.opts
	s.mu.Unlock()
	for _, fn := range optFns {
		fn(&childOpts)
	}
	return newScope(s.ctx, policy, childOpts)
}
