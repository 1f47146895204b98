// Package chanx provides Channel, a bounded blocking FIFO queue for passing
// values between goroutines, built on the condition variables of syncx.
//
// Send blocks while the buffer is full and Receive blocks while it is empty.
// Values from one sender are received in the order they were sent. A
// channel created with WithCapacity(0) is a rendezvous: Send returns only
// once a receiver has taken the value.
//
// Channels have no Close and no timeouts; a goroutine blocked in Send or
// Receive stays blocked until another goroutine performs the complementary
// operation.
package chanx
