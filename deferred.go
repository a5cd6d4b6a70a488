package settle

import (
	"context"
	"sync"
	"time"
)

// State describes the settlement state of a Deferred.
type State int8

const (
	// Pending means the Deferred has not settled yet.
	Pending State = iota
	// Fulfilled means the Deferred settled with a value.
	Fulfilled
	// Rejected means the Deferred settled with an error.
	Rejected
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// ExecFunc is the construction callback passed to New. It receives
// the resolve and reject capabilities of the new Deferred and runs
// synchronously during construction.
type ExecFunc[T any] func(resolve func(T) bool, reject func(error) bool)

// A Deferred is a placeholder for a value supplied later. It starts
// pending and settles exactly once, either as fulfilled with a value
// or as rejected with an error; every later settlement attempt is a
// no-op. Settlement unblocks all waiters, releases the expiry timer
// and runs the configured event handlers.
//
// A Deferred must not be copied after first use.
type Deferred[T any] struct {
	noCopy  noCopy        // Prevents copying of the Deferred
	mu      sync.Mutex    // Guards state, expired and timer
	state   State         // Current settlement state
	expired bool          // Whether the timer fired before settlement
	timeout time.Duration // Configured timeout, clamped to >= 0
	timer   *time.Timer   // Expiry timer, nil once released
	done    chan struct{} // Closed on settlement
	value   T             // Fulfillment value, set before done closes
	err     error         // Rejection error, set before done closes
	opts    Options[T]    // Caller configuration, never mutated
}

// New constructs a Deferred and synchronously invokes fn with its
// resolve and reject capabilities, so fn can wire the settlement to
// whatever asynchronous work it starts. opts may be nil. New panics
// with a *UsageError if fn is nil; use FromOptions for the
// options-only form.
func New[T any](fn ExecFunc[T], opts *Options[T]) *Deferred[T] {
	if fn == nil {
		panic(&UsageError{"settle: New requires a callback; use FromOptions for the options-only form"})
	}
	d := FromOptions(opts)
	fn(d.Resolve, d.Reject)
	return d
}

// FromOptions constructs a Deferred from configuration alone. opts
// may be nil. If a timeout is configured, the expiry timer is armed
// before FromOptions returns.
func FromOptions[T any](opts *Options[T]) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{})}
	if opts != nil {
		d.opts = *opts
	}
	if d.opts.Timeout != 0 {
		d.timeout = max(d.opts.Timeout, 0)
		d.mu.Lock()
		d.timer = time.AfterFunc(d.timeout, d.expire)
		d.mu.Unlock()
	}
	return d
}

// Resolve settles d as fulfilled with value. It reports whether the
// settlement was accepted: true on the first settlement, false if d
// was already settled, in which case Resolve is a no-op.
func (d *Deferred[T]) Resolve(value T) bool {
	return d.settle(Fulfilled, value, nil)
}

// Reject settles d as rejected with err. It reports whether the
// settlement was accepted: true on the first settlement, false if d
// was already settled, in which case Reject is a no-op.
func (d *Deferred[T]) Reject(err error) bool {
	var zero T
	return d.settle(Rejected, zero, err)
}

// settle performs the single pending-to-terminal transition. The
// timer is released here and nowhere else, so every settlement path
// clears it. Handlers run after the lock is dropped because they are
// allowed to call Resolve and Reject themselves.
func (d *Deferred[T]) settle(state State, value T, err error) bool {
	d.mu.Lock()
	if d.state != Pending {
		d.mu.Unlock()
		return false
	}
	d.state = state
	d.value = value
	d.err = err
	if t := d.timer; t != nil {
		d.timer = nil
		t.Stop()
	}
	close(d.done)
	d.mu.Unlock()

	logf("deferred %p %v", d, state)

	ref := Ref[T]{d}
	switch state {
	case Fulfilled:
		if fn := d.opts.OnResolve; fn != nil {
			fn(ref, value, d.opts.Args...)
		}
		if fn := d.opts.OnEvent; fn != nil {
			fn(ref, value, d.opts.Args...)
		}
		if fn := d.opts.OnSettled; fn != nil {
			fn(ref, value, d.opts.Args...)
		}
	case Rejected:
		if fn := d.opts.OnReject; fn != nil {
			fn(ref, err, d.opts.Args...)
		}
		if fn := d.opts.OnEvent; fn != nil {
			fn(ref, err, d.opts.Args...)
		}
		if fn := d.opts.OnSettled; fn != nil {
			fn(ref, err, d.opts.Args...)
		}
	}
	return true
}

// expire runs when the timer fires. If d is still pending it marks d
// expired and notifies OnTimeout and OnEvent first; either handler
// may settle d synchronously and that decision is final. Only if d
// is still pending afterward does the default rejection with a
// *TimeoutError fire.
func (d *Deferred[T]) expire() {
	d.mu.Lock()
	if d.state != Pending {
		d.mu.Unlock()
		return
	}
	d.expired = true
	d.timer = nil
	d.mu.Unlock()

	logf("deferred %p expired after %v", d, d.timeout)

	err := &TimeoutError{After: d.timeout}
	ref := Ref[T]{d}
	if fn := d.opts.OnTimeout; fn != nil {
		fn(ref, err, d.opts.Args...)
	}
	if fn := d.opts.OnEvent; fn != nil {
		fn(ref, err, d.opts.Args...)
	}
	d.Reject(err)
}

// Wait blocks until d settles or ctx is done. On fulfillment it
// returns the value; on rejection the zero value and the rejection
// error; if ctx is done first, the zero value and ctx.Err().
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when d settles.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// State reports the current settlement state.
func (d *Deferred[T]) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Expired reports whether the timer fired before settlement.
func (d *Deferred[T]) Expired() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.expired
}

// Timeout reports the configured timeout duration, clamped to >= 0.
// It is zero when no timer was configured.
func (d *Deferred[T]) Timeout() time.Duration {
	return d.timeout
}

// Tap returns a derived Deferred that, once d fulfills, invokes fn
// with the value for its side effects and then resolves to the same
// value. Rejections pass through untouched. A nil fn only forwards
// the settlement.
func (d *Deferred[T]) Tap(fn func(T)) *Deferred[T] {
	out := FromOptions[T](nil)
	go func() {
		v, err := d.Wait(context.Background())
		if err != nil {
			out.Reject(err)
			return
		}
		if fn != nil {
			fn(v)
		}
		out.Resolve(v)
	}()
	return out
}
