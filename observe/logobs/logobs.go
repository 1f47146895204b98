// Package logobs logs scope and channel events through log/slog.
package logobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/NetPo4ki/go-syncx/chanx"
	"github.com/NetPo4ki/go-syncx/scope"
)

var (
	_ scope.Observer = (*Observer)(nil)
	_ chanx.Observer = (*Observer)(nil)
)

// Observer writes one record per event. Task failures and panics are logged
// at warn level, everything else at debug.
type Observer struct {
	log *slog.Logger
}

// New returns an Observer writing to logger, or to slog.Default if logger is nil.
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{log: logger}
}

func (o *Observer) ScopeCreated(ctx context.Context) {
	o.log.DebugContext(ctx, "scope created")
}

func (o *Observer) ScopeCancelled(ctx context.Context, cause error) {
	o.log.DebugContext(ctx, "scope cancelled", slog.Any("cause", cause))
}

func (o *Observer) ScopeJoined(ctx context.Context, wait time.Duration) {
	o.log.DebugContext(ctx, "scope joined", slog.Duration("wait", wait))
}

func (o *Observer) TaskStarted(ctx context.Context) {
	o.log.DebugContext(ctx, "task started")
}

func (o *Observer) TaskFinished(ctx context.Context, dur time.Duration, err error, panicked bool) {
	switch {
	case panicked:
		o.log.WarnContext(ctx, "task panicked", slog.Any("err", err))
	case err != nil:
		o.log.WarnContext(ctx, "task failed", slog.Duration("duration", dur), slog.Any("err", err))
	default:
		o.log.DebugContext(ctx, "task finished", slog.Duration("duration", dur))
	}
}

func (o *Observer) SendBlocked(name string) {
	o.log.Debug("send blocked on full channel", slog.String("channel", name))
}

func (o *Observer) ReceiveBlocked(name string) {
	o.log.Debug("receive blocked on empty channel", slog.String("channel", name))
}

func (o *Observer) Sent(name string, wait time.Duration) {
	o.log.Debug("sent", slog.String("channel", name), slog.Duration("wait", wait))
}

func (o *Observer) Received(name string, wait time.Duration) {
	o.log.Debug("received", slog.String("channel", name), slog.Duration("wait", wait))
}
