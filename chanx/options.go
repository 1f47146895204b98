package chanx

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCapacity indicates a negative channel capacity.
var ErrInvalidCapacity = errors.New("invalid channel capacity")

// DefaultCapacity is the capacity of a channel created without WithCapacity.
const DefaultCapacity = 1

type Option func(*Options)

type Options struct {
	Capacity int
	Name     string
	Observer Observer
}

func defaultOptions() Options { return Options{Capacity: DefaultCapacity} }

// WithCapacity sets the buffer size. Zero makes the channel a rendezvous.
func WithCapacity(n int) Option { return func(o *Options) { o.Capacity = n } }

// WithName labels the channel for observers.
func WithName(name string) Option { return func(o *Options) { o.Name = name } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives channel events. Calls are made without holding the
// channel's lock, from the goroutine performing the operation.
type Observer interface {
	SendBlocked(name string)
	ReceiveBlocked(name string)
	Sent(name string, wait time.Duration)
	Received(name string, wait time.Duration)
}

func (o Options) validate() error {
	if o.Capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, o.Capacity)
	}
	return nil
}
