// Package scope spawns goroutines that belong to a Scope. A Scope is a join
// point (Wait) that propagates cancellation and errors according to a
// policy; it is built on the primitives of syncx.
package scope
