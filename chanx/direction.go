package chanx

// SendChan is the send side of a Channel.
type SendChan[T any] interface {
	Send(v T)
	TrySend(v T) bool
	Len() int
	Cap() int
}

// ReceiveChan is the receive side of a Channel.
type ReceiveChan[T any] interface {
	Receive() T
	TryReceive() (T, bool)
	Len() int
	Cap() int
}

var (
	_ SendChan[int]    = (*Channel[int])(nil)
	_ ReceiveChan[int] = (*Channel[int])(nil)
)

// SendOnly returns a view of c that can only send.
func (c *Channel[T]) SendOnly() SendChan[T] { return sendOnly[T]{c} }

// ReceiveOnly returns a view of c that can only receive.
func (c *Channel[T]) ReceiveOnly() ReceiveChan[T] { return receiveOnly[T]{c} }

// The views wrap the channel so a caller cannot type-assert back to it.
type sendOnly[T any] struct{ c *Channel[T] }

func (s sendOnly[T]) Send(v T)         { s.c.Send(v) }
func (s sendOnly[T]) TrySend(v T) bool { return s.c.TrySend(v) }
func (s sendOnly[T]) Len() int         { return s.c.Len() }
func (s sendOnly[T]) Cap() int         { return s.c.Cap() }

type receiveOnly[T any] struct{ c *Channel[T] }

func (r receiveOnly[T]) Receive() T            { return r.c.Receive() }
func (r receiveOnly[T]) TryReceive() (T, bool) { return r.c.TryReceive() }
func (r receiveOnly[T]) Len() int              { return r.c.Len() }
func (r receiveOnly[T]) Cap() int              { return r.c.Cap() }
