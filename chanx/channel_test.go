package chanx_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-syncx/chanx"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// returnsWithin reports whether done is closed before d elapses.
func returnsWithin(d time.Duration, done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	c := chanx.New[int]()
	assert.Equal(t, chanx.DefaultCapacity, c.Cap())
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Name())
}

func TestNewNegativeCapacityPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected panic with an error value")
		require.ErrorIs(t, err, chanx.ErrInvalidCapacity)
	}()
	chanx.New[int](chanx.WithCapacity(-1))
	t.Fatal("New did not panic")
}

// Capacity 1: Send(5) returns at once, a second Send(7) blocks until
// Receive returns 5, and the next Receive returns 7.
func TestCapacityOneScenario(t *testing.T) {
	t.Parallel()

	c := chanx.New[int](chanx.WithCapacity(1))
	c.Send(5)
	require.Equal(t, 1, c.Len())

	sent := make(chan struct{})
	go func() {
		c.Send(7)
		close(sent)
	}()
	require.False(t, returnsWithin(20*time.Millisecond, sent), "Send(7) returned on a full channel")

	assert.Equal(t, 5, c.Receive())
	require.True(t, returnsWithin(time.Second, sent), "Send(7) still blocked after Receive")
	assert.Equal(t, 7, c.Receive())
	assert.Zero(t, c.Len())
}

func TestReceiveBlocksUntilSend(t *testing.T) {
	t.Parallel()

	c := chanx.New[string](chanx.WithCapacity(4))
	got := make(chan string, 1)
	done := make(chan struct{})
	go func() {
		got <- c.Receive()
		close(done)
	}()

	require.False(t, returnsWithin(20*time.Millisecond, done), "Receive returned on an empty channel")
	c.Send("hello")
	require.True(t, returnsWithin(time.Second, done), "Receive still blocked after Send")
	assert.Equal(t, "hello", <-got)
}

func TestFIFOSingleSender(t *testing.T) {
	t.Parallel()

	for _, capacity := range []int{0, 1, 3, 64} {
		c := chanx.New[int](chanx.WithCapacity(capacity))

		const n = 500

		go func() {
			for i := range n {
				c.Send(i)
			}
		}()

		for i := range n {
			require.Equal(t, i, c.Receive(), "capacity %d", capacity)
		}
	}
}

func TestFIFOPerSenderOrder(t *testing.T) {
	t.Parallel()

	type msg struct{ sender, seq int }

	const (
		senders   = 4
		receivers = 3
		perSender = 200
	)

	c := chanx.New[msg](chanx.WithCapacity(5))

	var g errgroup.Group
	for s := range senders {
		g.Go(func() error {
			for i := range perSender {
				c.Send(msg{sender: s, seq: i})
			}
			return nil
		})
	}

	var (
		mu  sync.Mutex
		got = make(map[int][]int)
	)
	var rg errgroup.Group
	for r := range receivers {
		share := senders * perSender / receivers
		if r == 0 {
			share += senders * perSender % receivers
		}
		rg.Go(func() error {
			local := make([]msg, 0, share)
			last := make(map[int]int)
			var err error
			for range share {
				m := c.Receive()
				if prev, ok := last[m.sender]; ok && m.seq <= prev && err == nil {
					err = fmt.Errorf("receiver %d: sender %d seq %d after %d", r, m.sender, m.seq, prev)
				}
				last[m.sender] = m.seq
				local = append(local, m)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, m := range local {
				got[m.sender] = append(got[m.sender], m.seq)
			}
			return err
		})
	}

	require.NoError(t, g.Wait())
	require.NoError(t, rg.Wait())

	// Each receiver sees any single sender's values in increasing order;
	// merged across receivers every value arrives exactly once.
	for s := range senders {
		require.Len(t, got[s], perSender, "sender %d", s)
		seen := make(map[int]bool, perSender)
		for _, seq := range got[s] {
			seen[seq] = true
		}
		assert.Len(t, seen, perSender, "sender %d lost or duplicated values", s)
	}
}

func TestFIFOPerSenderOrderSingleReceiver(t *testing.T) {
	t.Parallel()

	const (
		senders   = 4
		perSender = 300
	)

	c := chanx.New[[2]int](chanx.WithCapacity(2))

	var g errgroup.Group
	for s := range senders {
		g.Go(func() error {
			for i := range perSender {
				c.Send([2]int{s, i})
			}
			return nil
		})
	}

	next := make([]int, senders)
	for range senders * perSender {
		v := c.Receive()
		require.Equal(t, next[v[0]], v[1], "sender %d out of order", v[0])
		next[v[0]]++
	}
	require.NoError(t, g.Wait())
}

func TestCapacityInvariant(t *testing.T) {
	t.Parallel()

	const capacity = 3

	c := chanx.New[int](chanx.WithCapacity(capacity))

	var (
		stop     atomic.Bool
		maxSeen  atomic.Int64
		sampling sync.WaitGroup
	)
	sampling.Add(1)
	go func() {
		defer sampling.Done()
		for !stop.Load() {
			l := int64(c.Len())
			if l < 0 {
				t.Errorf("negative length %d", l)
			}
			if m := maxSeen.Load(); l > m {
				maxSeen.CompareAndSwap(m, l)
			}
		}
	}()

	var g errgroup.Group
	for range 4 {
		g.Go(func() error {
			for i := range 500 {
				c.Send(i)
			}
			return nil
		})
		g.Go(func() error {
			for range 500 {
				c.Receive()
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	stop.Store(true)
	sampling.Wait()

	assert.LessOrEqual(t, maxSeen.Load(), int64(capacity))
	assert.Zero(t, c.Len())
}

func TestRendezvous(t *testing.T) {
	t.Parallel()

	c := chanx.New[int](chanx.WithCapacity(0))
	require.Zero(t, c.Cap())

	sent := make(chan struct{})
	go func() {
		c.Send(1)
		close(sent)
	}()

	// The value is staged but Send waits for a receiver.
	require.False(t, returnsWithin(20*time.Millisecond, sent), "Send returned without a receiver")
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 1, c.Receive())
	require.True(t, returnsWithin(time.Second, sent), "Send still blocked after hand-off")
}

func TestTrySendTryReceive(t *testing.T) {
	t.Parallel()

	c := chanx.New[int](chanx.WithCapacity(2))

	_, ok := c.TryReceive()
	assert.False(t, ok)

	assert.True(t, c.TrySend(1))
	assert.True(t, c.TrySend(2))
	assert.False(t, c.TrySend(3), "TrySend succeeded on a full channel")

	v, ok := c.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Receive())
}

func TestTrySendRendezvousNeedsReceiver(t *testing.T) {
	t.Parallel()

	c := chanx.New[int](chanx.WithCapacity(0))
	assert.False(t, c.TrySend(1), "TrySend succeeded with no receiver")

	got := make(chan int)
	go func() { got <- c.Receive() }()

	require.Eventually(t, func() bool { return c.TrySend(9) }, time.Second, time.Millisecond)
	assert.Equal(t, 9, <-got)
}

func TestDirectionalViews(t *testing.T) {
	t.Parallel()

	c := chanx.New[string](chanx.WithCapacity(2))
	var (
		tx chanx.SendChan[string]    = c.SendOnly()
		rx chanx.ReceiveChan[string] = c.ReceiveOnly()
	)

	_, isChannel := tx.(*chanx.Channel[string])
	assert.False(t, isChannel, "send view exposes the channel")

	tx.Send("a")
	assert.True(t, tx.TrySend("b"))
	assert.Equal(t, 2, rx.Len())
	assert.Equal(t, 2, tx.Cap())

	assert.Equal(t, "a", rx.Receive())
	v, ok := rx.TryReceive()
	require.True(t, ok)
	assert.Equal(t, "b", v)
}
