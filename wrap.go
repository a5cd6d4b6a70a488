package settle

// Wrap produces a serialized version of fn. All invocations of the
// returned function share one queue, so fn runs for at most one call
// at a time, in call order.
//
// pre, when non-nil, is a pre-flight hook that runs synchronously at
// call time, before the call is queued; a pre error rejects the call
// without touching the queue or the cache.
//
// check, when non-nil, is evaluated on the queue against the result
// cached by the previous successful invocation. The first call has
// nothing cached and always runs fn. Once check returns false the
// cache is permanently cleared: fn is never invoked again and every
// later call fulfills with the zero value of R. The trip is one-way;
// no later call re-arms the cache.
//
// A successful fn result is cached and becomes the fulfillment
// value. An fn error rejects the call and leaves the cache
// unchanged.
//
// Wrap panics with a *UsageError if fn is nil.
func Wrap[A, R any](fn func(A) (R, error), pre func(A) error, check func(R) bool) func(A) *Deferred[R] {
	if fn == nil {
		panic(&UsageError{"settle: Wrap requires a function"})
	}

	// The cache is read and written only from queued callbacks,
	// which the Serial runs one at a time with its own mutex
	// ordering the hand-offs, so no extra locking is needed here.
	var (
		queue   Serial
		last    R
		primed  bool
		cleared bool
	)

	return func(arg A) *Deferred[R] {
		out := FromOptions[R](nil)
		if pre != nil {
			if err := pre(arg); err != nil {
				out.Reject(err)
				return out
			}
		}
		queue.Run(func(func(any) bool, func(error) bool) (any, error) {
			var zero R
			if cleared {
				out.Resolve(zero)
				return nil, nil
			}
			if check != nil && primed && !check(last) {
				cleared = true
				primed = false
				last = zero
				logf("wrap %p cleared", &queue)
				out.Resolve(zero)
				return nil, nil
			}
			r, err := fn(arg)
			if err != nil {
				out.Reject(err)
				return nil, nil
			}
			last = r
			primed = true
			out.Resolve(r)
			return nil, nil
		}, true)
		return out
	}
}
