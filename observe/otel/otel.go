package otel

import (
	"context"
	"time"

	"github.com/NetPo4ki/go-syncx/chanx"
	"github.com/NetPo4ki/go-syncx/scope"
)

var (
	_ scope.Observer = (*Nop)(nil)
	_ chanx.Observer = (*Nop)(nil)
)

// Nop discards scope and channel events.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) ScopeCreated(context.Context)                             {}
func (*Nop) ScopeCancelled(context.Context, error)                    {}
func (*Nop) ScopeJoined(context.Context, time.Duration)               {}
func (*Nop) TaskStarted(context.Context)                              {}
func (*Nop) TaskFinished(context.Context, time.Duration, error, bool) {}

func (*Nop) SendBlocked(string)             {}
func (*Nop) ReceiveBlocked(string)          {}
func (*Nop) Sent(string, time.Duration)     {}
func (*Nop) Received(string, time.Duration) {}
