// Package errgroup offers the golang.org/x/sync/errgroup API on top of a
// FailFast scope, so code written against errgroup can run its goroutines
// on syncx primitives unchanged.
package errgroup

import (
	"context"
	"fmt"

	"github.com/NetPo4ki/go-syncx/scope"
	"github.com/NetPo4ki/go-syncx/syncx"
)

// Group is a collection of goroutines working on subtasks of a common task.
// The zero value is a Group with no context and no limit.
type Group struct {
	init syncx.Once
	s    *scope.Scope

	// active goroutines, bounded by limit when limit >= 0
	mu     syncx.Mutex
	freed  *syncx.Cond
	active int
	limit  int
}

// WithContext returns a new Group and a derived context that is canceled
// the first time a function passed to Go returns a non-nil error or when
// Wait returns, whichever comes first.
func WithContext(ctx context.Context) (*Group, context.Context) {
	g := &Group{s: scope.New(ctx, scope.FailFast)}
	return g, g.scope().Context()
}

func (g *Group) scope() *scope.Scope {
	g.init.Do(func() {
		if g.s == nil {
			g.s = scope.New(context.Background(), scope.FailFast)
		}
		g.freed = syncx.NewCond(&g.mu)
		g.limit = -1
	})
	return g.s
}

// Go calls f in a new goroutine. If the group limit is reached, Go blocks
// the caller until a goroutine of the group returns.
func (g *Group) Go(f func() error) {
	s := g.scope()
	g.mu.Lock()
	for g.limit >= 0 && g.active >= g.limit {
		g.freed.Wait()
	}
	g.active++
	g.mu.Unlock()
	g.spawn(s, f)
}

// TryGo calls f in a new goroutine only if the group limit allows it, and
// reports whether it did.
func (g *Group) TryGo(f func() error) bool {
	s := g.scope()
	g.mu.Lock()
	if g.limit >= 0 && g.active >= g.limit {
		g.mu.Unlock()
		return false
	}
	g.active++
	g.mu.Unlock()
	g.spawn(s, f)
	return true
}

func (g *Group) spawn(s *scope.Scope, f func() error) {
	s.Go(func(context.Context) error {
		defer g.done()
		if f == nil {
			return nil
		}
		return f()
	})
}

func (g *Group) done() {
	g.mu.Lock()
	g.active--
	g.freed.Signal()
	g.mu.Unlock()
}

// SetLimit limits the number of active goroutines to n. A negative value
// means no limit; zero lets no goroutine start. It panics if called while
// goroutines are active.
func (g *Group) SetLimit(n int) {
	g.scope()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active != 0 {
		panic(fmt.Errorf("errgroup: modify limit while %v goroutines in the group are still active", g.active))
	}
	g.limit = max(n, -1)
}

// Wait blocks until all function calls from Go have returned, then returns
// the first non-nil error (if any) from them.
func (g *Group) Wait() error {
	s := g.scope()
	err := s.Wait()
	s.Cancel(nil)
	return err
}
