package settle

import (
	"context"
	"sync"
)

// All returns a Deferred that fulfills with the values of ds, in
// argument order, once every input fulfills. It rejects with the
// first rejection observed; remaining inputs keep running but their
// outcomes no longer matter. All of no inputs fulfills immediately
// with an empty slice.
func All[T any](ds ...*Deferred[T]) *Deferred[[]T] {
	out := FromOptions[[]T](nil)
	go func() {
		values := make([]T, len(ds))
		var wg sync.WaitGroup
		for i, d := range ds {
			i, d := i, d
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := d.Wait(context.Background())
				if err != nil {
					out.Reject(err)
					return
				}
				values[i] = v
			}()
		}
		wg.Wait()
		out.Resolve(values)
	}()
	return out
}

// Race returns a Deferred that settles the way the first of ds
// settles. Race of no inputs never settles.
func Race[T any](ds ...*Deferred[T]) *Deferred[T] {
	out := FromOptions[T](nil)
	for _, d := range ds {
		d := d
		go func() {
			v, err := d.Wait(context.Background())
			if err != nil {
				out.Reject(err)
				return
			}
			out.Resolve(v)
		}()
	}
	return out
}
