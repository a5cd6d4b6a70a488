package settle

import (
	"context"
	"time"
)

// Waiter is anything that can be awaited for a value: a Deferred, or
// any other source of an eventual result. Deferred implements it.
type Waiter[T any] interface {
	Wait(ctx context.Context) (T, error)
}

// Resolve returns a Deferred already settled as fulfilled with
// value. Configured handlers fire synchronously before Resolve
// returns. opts may be nil.
func Resolve[T any](value T, opts *Options[T]) *Deferred[T] {
	d := FromOptions(opts)
	d.Resolve(value)
	return d
}

// From adapts w into a Deferred whose settlement is driven by w's
// own result: a value fulfills it and an error rejects it. opts may
// be nil. From panics with a *UsageError if w is nil.
func From[T any](w Waiter[T], opts *Options[T]) *Deferred[T] {
	if w == nil {
		panic(&UsageError{"settle: From requires a Waiter"})
	}
	d := FromOptions(opts)
	go func() {
		v, err := w.Wait(context.Background())
		if err != nil {
			d.Reject(err)
			return
		}
		d.Resolve(v)
	}()
	return d
}

// Compose returns a function of one argument that threads it through
// fns in order, each function's result becoming the input to the
// next. The returned function runs the pipeline asynchronously; the
// first error rejects the result and stops the pipeline.
func Compose[T any](fns ...func(T) (T, error)) func(T) *Deferred[T] {
	return func(v T) *Deferred[T] {
		d := FromOptions[T](nil)
		go func() {
			var err error
			for _, fn := range fns {
				if v, err = fn(v); err != nil {
					d.Reject(err)
					return
				}
			}
			d.Resolve(v)
		}()
		return d
	}
}

// After returns a Deferred that fulfills with no value once delay
// has elapsed.
func After(delay time.Duration) *Deferred[struct{}] {
	d := FromOptions[struct{}](nil)
	time.AfterFunc(delay, func() {
		d.Resolve(struct{}{})
	})
	return d
}
