package chanx

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NetPo4ki/go-syncx/syncx"
)

// Channel is a bounded FIFO queue of values of type T. Create channels with
// New; the zero value is not usable.
type Channel[T any] struct {
	mu       syncx.Mutex
	notFull  *syncx.Cond // senders wait here for room
	notEmpty *syncx.Cond // receivers wait here for data
	taken    *syncx.Cond // rendezvous senders wait here for their value to be received

	// ring buffer of max(capacity, 1) slots
	buf   []T
	head  int
	count int

	capacity int

	// sent and recvd number the values that went through the buffer; a
	// rendezvous sender waits until recvd reaches its ticket.
	sent, recvd uint64
	// receivers parked in Receive
	recvWaiting int

	name string
	obs  Observer
}

// New returns an empty channel. It panics with an error wrapping
// ErrInvalidCapacity if the capacity option is negative.
func New[T any](optFns ...Option) *Channel[T] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.validate(); err != nil {
		panic(fmt.Errorf("chanx: %w", err))
	}
	c := &Channel[T]{
		buf:      make([]T, max(opts.Capacity, 1)),
		capacity: opts.Capacity,
		name:     opts.Name,
		obs:      opts.Observer,
	}
	c.notFull = syncx.NewCond(&c.mu)
	c.notEmpty = syncx.NewCond(&c.mu)
	c.taken = syncx.NewCond(&c.mu)
	if c.obs != nil && c.name == "" {
		c.name = "chan-" + uuid.NewString()
	}
	return c
}

// Send appends v to the channel, blocking while the buffer is full. On a
// rendezvous channel Send also blocks until a receiver has taken v.
func (c *Channel[T]) Send(v T) {
	var start time.Time
	if c.obs != nil {
		start = time.Now()
	}

	c.mu.Lock()
	if c.full() {
		if c.obs != nil {
			c.mu.Unlock()
			c.obs.SendBlocked(c.name)
			c.mu.Lock()
		}
		for c.full() {
			c.notFull.Wait()
		}
	}
	ticket := c.push(v)
	if c.capacity == 0 {
		for c.recvd < ticket {
			c.taken.Wait()
		}
	}
	c.mu.Unlock()

	if c.obs != nil {
		c.obs.Sent(c.name, time.Since(start))
	}
}

// TrySend appends v if that can be done without blocking and reports
// whether it did. On a rendezvous channel it succeeds only when a receiver
// is parked in Receive and no other value is staged for it.
func (c *Channel[T]) TrySend(v T) bool {
	c.mu.Lock()
	ok := !c.full()
	if c.capacity == 0 {
		ok = ok && c.recvWaiting > 0
	}
	if ok {
		c.push(v)
	}
	c.mu.Unlock()

	if ok && c.obs != nil {
		c.obs.Sent(c.name, 0)
	}
	return ok
}

// Receive removes and returns the value at the front of the channel,
// blocking while the channel is empty.
func (c *Channel[T]) Receive() T {
	var start time.Time
	if c.obs != nil {
		start = time.Now()
	}

	c.mu.Lock()
	if c.count == 0 {
		if c.obs != nil {
			c.mu.Unlock()
			c.obs.ReceiveBlocked(c.name)
			c.mu.Lock()
		}
		c.recvWaiting++
		for c.count == 0 {
			c.notEmpty.Wait()
		}
		c.recvWaiting--
	}
	v := c.pop()
	c.mu.Unlock()

	if c.obs != nil {
		c.obs.Received(c.name, time.Since(start))
	}
	return v
}

// TryReceive removes and returns the front value if one is available
// without blocking. The boolean reports whether a value was received.
func (c *Channel[T]) TryReceive() (T, bool) {
	c.mu.Lock()
	if c.count == 0 {
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	v := c.pop()
	c.mu.Unlock()

	if c.obs != nil {
		c.obs.Received(c.name, 0)
	}
	return v, true
}

// Len returns the number of buffered values.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Cap returns the capacity the channel was created with.
func (c *Channel[T]) Cap() int { return c.capacity }

// Name returns the channel's label, empty unless set or an observer is attached.
func (c *Channel[T]) Name() string { return c.name }

func (c *Channel[T]) full() bool {
	return c.count == len(c.buf)
}

// push stores v at the back and wakes a receiver. c.mu must be held and the
// buffer must have room.
func (c *Channel[T]) push(v T) uint64 {
	c.buf[(c.head+c.count)%len(c.buf)] = v
	c.count++
	c.sent++
	c.notEmpty.Signal()
	return c.sent
}

// pop takes the front value and wakes a sender. c.mu must be held and the
// buffer must not be empty.
func (c *Channel[T]) pop() T {
	var zero T
	v := c.buf[c.head]
	c.buf[c.head] = zero
	c.head = (c.head + 1) % len(c.buf)
	c.count--
	c.recvd++
	c.notFull.Signal()
	if c.capacity == 0 {
		c.taken.Broadcast()
	}
	return v
}
