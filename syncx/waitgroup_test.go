package syncx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitGroupReleasesAfterLastDone(t *testing.T) {
	t.Parallel()

	var wg WaitGroup
	wg.Add(3)

	released := make(chan struct{})
	go func() {
		wg.Wait()
		close(released)
	}()

	for i := range 3 {
		time.Sleep(10 * time.Millisecond)
		select {
		case <-released:
			t.Fatalf("Wait returned after %d of 3 Done calls", i)
		default:
		}
		wg.Done()
	}

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the third Done")
	}
}

func TestWaitGroupZeroCrossing(t *testing.T) {
	t.Parallel()

	tests := map[string][]int{
		"single add":      {2, -1, -1},
		"interleaved":     {1, 2, -1, 1, -2, -1},
		"add after drain": {1, 1, -2},
	}

	for name, deltas := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var wg WaitGroup
			wg.Add(deltas[0])

			released := make(chan struct{})
			go func() {
				wg.Wait()
				close(released)
			}()

			sum := deltas[0]
			for _, d := range deltas[1:] {
				time.Sleep(5 * time.Millisecond)
				select {
				case <-released:
					t.Fatalf("Wait returned while counter was %d", sum)
				default:
				}
				wg.Add(d)
				sum += d
			}
			require.Zero(t, sum)

			select {
			case <-released:
			case <-time.After(time.Second):
				t.Fatal("Wait did not return at zero")
			}
		})
	}
}

func TestWaitGroupZeroDoesNotBlock(t *testing.T) {
	t.Parallel()

	var wg WaitGroup
	wg.Wait()
}

func TestWaitGroupReuse(t *testing.T) {
	t.Parallel()

	var wg WaitGroup
	for cycle := range 3 {
		done := 0
		var mu Mutex
		for range 5 {
			wg.Go(func() {
				mu.Lock()
				done++
				mu.Unlock()
			})
		}
		wg.Wait()
		assert.Equal(t, 5, done, "cycle %d", cycle)
	}
}

func TestWaitGroupNegativeCounterPanics(t *testing.T) {
	t.Parallel()

	var wg WaitGroup
	require.ErrorIs(t, panicErr(wg.Done), ErrNegativeCounter)
}

func TestWaitGroupNegativeCounterReleasesWaiters(t *testing.T) {
	t.Parallel()

	var wg WaitGroup
	wg.Add(1)

	released := make(chan struct{})
	go func() {
		wg.Wait()
		close(released)
	}()
	time.Sleep(10 * time.Millisecond)

	require.ErrorIs(t, panicErr(func() { wg.Add(-2) }), ErrNegativeCounter)
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("waiter still blocked after counter went negative")
	}
}
