package settle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllCollectsInArgumentOrder(t *testing.T) {
	r := require.New(t)

	ds := make([]*Deferred[int], 3)
	for i := range ds {
		ds[i] = FromOptions[int](nil)
	}

	// Settle in reverse to confirm ordering follows arguments, not
	// settlement time.
	go func() {
		for i := len(ds) - 1; i >= 0; i-- {
			time.Sleep(5 * time.Millisecond)
			ds[i].Resolve(i * 10)
		}
	}()

	v, err := All(ds...).Wait(context.Background())
	r.NoError(err)
	r.Equal([]int{0, 10, 20}, v)
}

func TestAllRejectsOnFirstError(t *testing.T) {
	r := require.New(t)

	a := FromOptions[int](nil)
	b := FromOptions[int](nil)
	boom := errors.New("boom")

	out := All(a, b)
	b.Reject(boom)

	_, err := out.Wait(context.Background())
	r.ErrorIs(err, boom)
}

func TestAllEmptyFulfills(t *testing.T) {
	r := require.New(t)

	v, err := All[int]().Wait(context.Background())
	r.NoError(err)
	r.Empty(v)
}

func TestRaceFirstSettlementWins(t *testing.T) {
	r := require.New(t)

	slow := FromOptions[string](nil)
	fast := FromOptions[string](nil)

	out := Race(slow, fast)
	fast.Resolve("fast")

	v, err := out.Wait(context.Background())
	r.NoError(err)
	r.Equal("fast", v)

	slow.Resolve("slow")
	r.Equal(Fulfilled, out.State())

	v, err = out.Wait(context.Background())
	r.NoError(err)
	r.Equal("fast", v)
}

func TestRaceRejectionWins(t *testing.T) {
	r := require.New(t)

	pending := FromOptions[int](nil)
	failed := FromOptions[int](nil)
	boom := errors.New("boom")

	out := Race(pending, failed)
	failed.Reject(boom)

	_, err := out.Wait(context.Background())
	r.ErrorIs(err, boom)
}
