package settle

import (
	"context"
	"fmt"
	"sync"

	"github.com/gammazero/deque"
)

// Callback is the unit of work submitted to a Serial. It receives
// the resolve and reject capabilities of the Deferred returned by
// Run or Try and may also settle by returning: a non-nil error
// rejects, and the returned value fulfills when the call was
// submitted with resolveOnReturn set.
type Callback func(resolve func(any) bool, reject func(error) bool) (any, error)

// Serial runs submitted callbacks strictly one at a time in
// submission order. A callback body never starts before the previous
// call's Deferred has settled, regardless of how long each body
// takes internally. Callbacks of a single Serial therefore never
// interleave; distinct Serial values impose no ordering on each
// other.
//
// A zero Serial is valid and ready to use. A Serial must not be
// copied after first use.
type Serial struct {
	noCopy noCopy              // Prevents copying of the Serial
	mu     sync.Mutex          // Guards queue and active
	queue  deque.Deque[func()] // Callbacks waiting for the active slot
	active bool                // Whether a drain goroutine is running
}

// Run submits fn to execute after every previously submitted
// callback has settled. The returned Deferred settles by whichever
// happens first: fn invokes resolve or reject, fn returns a non-nil
// error (a rejection), or — when resolveOnReturn is set — fn returns
// and its value becomes the fulfillment value. A panicking fn is
// delivered as a rejection so the queue can advance.
//
// If fn neither settles explicitly nor, with resolveOnReturn unset,
// settles by returning, the Deferred never settles and the queue
// stalls behind it. That is a caller responsibility; Run imposes no
// timeout of its own.
//
// Run panics with a *UsageError if fn is nil.
func (s *Serial) Run(fn Callback, resolveOnReturn bool) *Deferred[any] {
	if fn == nil {
		panic(&UsageError{"settle: Run requires a callback"})
	}
	d := FromOptions[any](nil)
	s.enqueue(func() {
		invoke(d, fn, resolveOnReturn)
		<-d.Done()
	})
	return d
}

// Try is Run with rejections redirected into fulfillments: a thrown
// error, a returned error or an explicit reject fulfills the
// returned Deferred with that error as its value. The queuing
// discipline is identical to Run.
//
// Try panics with a *UsageError if fn is nil.
func (s *Serial) Try(fn Callback, resolveOnReturn bool) *Deferred[any] {
	if fn == nil {
		panic(&UsageError{"settle: Try requires a callback"})
	}
	inner := FromOptions[any](nil)
	out := FromOptions[any](nil)
	s.enqueue(func() {
		invoke(inner, fn, resolveOnReturn)
		v, err := inner.Wait(context.Background())
		if err != nil {
			out.Resolve(err)
			return
		}
		out.Resolve(v)
	})
	return out
}

// Pending returns the number of submitted callbacks that have not
// started yet. It does not count the currently running callback.
func (s *Serial) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// invoke runs fn against d's capabilities and applies the
// settle-on-return rules. Explicit settlement inside fn wins because
// settlement is first-call-only.
func invoke(d *Deferred[any], fn Callback, resolveOnReturn bool) {
	defer func() {
		if p := recover(); p != nil {
			d.Reject(fmt.Errorf("settle: callback panic: %v", p))
		}
	}()
	v, err := fn(d.Resolve, d.Reject)
	switch {
	case err != nil:
		d.Reject(err)
	case resolveOnReturn:
		d.Resolve(v)
	}
}

// enqueue hands run to the drain goroutine, starting one if the
// queue is idle. The mutex guards only the chain-extension step;
// callback bodies run outside it.
func (s *Serial) enqueue(run func()) {
	s.mu.Lock()
	if s.active {
		s.queue.PushBack(run)
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go s.drain(run)
}

// drain owns the active slot: it executes run, then keeps popping
// queued callbacks until the queue is empty, at which point the slot
// is released. At most one drain goroutine exists per Serial.
func (s *Serial) drain(run func()) {
	for {
		logf("serial %p run", s)
		run()

		s.mu.Lock()
		if s.queue.Len() == 0 {
			s.active = false
			s.mu.Unlock()
			return
		}
		run = s.queue.PopFront()
		s.mu.Unlock()
	}
}
