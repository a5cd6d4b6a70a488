package settle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapRunsAndCaches(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	calls := 0
	wrapped := Wrap(func(x int) (int, error) {
		calls++
		return x * 2, nil
	}, nil, nil)

	v, err := wrapped(3).Wait(ctx)
	r.NoError(err)
	r.Equal(6, v)

	v, err = wrapped(4).Wait(ctx)
	r.NoError(err)
	r.Equal(8, v)

	r.Equal(2, calls)
}

func TestWrapCheckClearsPermanently(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	calls := 0
	wrapped := Wrap(func(x int) (int, error) {
		calls++
		return x, nil
	}, nil, func(last int) bool {
		return last < 2
	})

	// First call: nothing cached yet, the check is skipped.
	v, err := wrapped(1).Wait(ctx)
	r.NoError(err)
	r.Equal(1, v)

	// check(1) passes, fn runs and caches 2.
	v, err = wrapped(2).Wait(ctx)
	r.NoError(err)
	r.Equal(2, v)

	// check(2) fails: cache cleared for good, fn skipped.
	v, err = wrapped(3).Wait(ctx)
	r.NoError(err)
	r.Zero(v)

	// Still cleared; no call can re-arm it.
	v, err = wrapped(1).Wait(ctx)
	r.NoError(err)
	r.Zero(v)

	r.Equal(2, calls)
}

func TestWrapPreFlightRejects(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	boom := errors.New("preflight")
	calls := 0
	wrapped := Wrap(func(int) (int, error) {
		calls++
		return 0, nil
	}, func(x int) error {
		if x < 0 {
			return boom
		}
		return nil
	}, nil)

	_, err := wrapped(-1).Wait(ctx)
	r.ErrorIs(err, boom)
	r.Equal(0, calls)

	v, err := wrapped(1).Wait(ctx)
	r.NoError(err)
	r.Zero(v)
	r.Equal(1, calls)
}

func TestWrapErrorDoesNotCache(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	boom := errors.New("first call fails")
	calls := 0
	wrapped := Wrap(func(x int) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return x, nil
	}, nil, func(last int) bool {
		return last != 0
	})

	_, err := wrapped(9).Wait(ctx)
	r.ErrorIs(err, boom)

	// The failed call cached nothing, so the check is still skipped
	// and fn runs again.
	v, err := wrapped(9).Wait(ctx)
	r.NoError(err)
	r.Equal(9, v)
	r.Equal(2, calls)
}

func TestWrapNilFunctionPanics(t *testing.T) {
	r := require.New(t)

	r.PanicsWithError("settle: Wrap requires a function", func() {
		Wrap[int, int](nil, nil, nil)
	})
}
