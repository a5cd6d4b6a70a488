package settle

import "time"

// Options configures a Deferred. All fields are optional. The
// Deferred holds its Options for its whole lifetime to service the
// event handlers and never mutates them.
//
// Every handler receives a Ref capability for the owning Deferred,
// the primary value or error of the event, and the configured Args
// appended in order. Handler panics are not recovered by the
// package.
type Options[T any] struct {
	// Timeout arms the auto-expiry timer when nonzero. Negative
	// values are clamped to zero, which fires on the next timer
	// tick. The zero value leaves the timer disarmed.
	Timeout time.Duration

	// OnResolve is called on fulfillment with the fulfillment
	// value, before OnEvent and OnSettled.
	OnResolve func(ref Ref[T], value T, args ...any)

	// OnReject is called on rejection with the rejection error,
	// before OnEvent and OnSettled.
	OnReject func(ref Ref[T], err error, args ...any)

	// OnTimeout is called when the timer fires, before any default
	// rejection. The Deferred is still pending at that point, and
	// the handler may call ref.Resolve or ref.Reject to decide the
	// final outcome itself.
	OnTimeout func(ref Ref[T], err error, args ...any)

	// OnEvent is called on fulfillment, rejection and timer expiry,
	// after the type-specific handler, with the same value or
	// error.
	OnEvent func(ref Ref[T], v any, args ...any)

	// OnSettled is called after fulfillment or rejection, but not
	// on the pre-settlement timeout notification.
	OnSettled func(ref Ref[T], v any, args ...any)

	// Args holds extra arguments appended to every handler
	// invocation.
	Args []any
}

// Ref is the capability handed to event handlers and construction
// callbacks. It exposes settlement and the readable state of the
// owning Deferred without granting access to its internals.
type Ref[T any] struct {
	d *Deferred[T]
}

// Resolve settles the owning Deferred as fulfilled with value. See
// Deferred.Resolve.
func (r Ref[T]) Resolve(value T) bool { return r.d.Resolve(value) }

// Reject settles the owning Deferred as rejected with err. See
// Deferred.Reject.
func (r Ref[T]) Reject(err error) bool { return r.d.Reject(err) }

// State reports the current settlement state of the owning Deferred.
func (r Ref[T]) State() State { return r.d.State() }

// Timeout reports the configured timeout duration of the owning
// Deferred.
func (r Ref[T]) Timeout() time.Duration { return r.d.Timeout() }

// Expired reports whether the owning Deferred's timer fired before
// settlement.
func (r Ref[T]) Expired() bool { return r.d.Expired() }
