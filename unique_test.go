package refbench

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestUnique_CloseRunsFinalizerOnce(t *testing.T) {
	var closed atomic.Int64

	u := NewUnique("resource", func(string) { closed.Inc() })
	require.True(t, u.Valid())
	require.Equal(t, "resource", *u.Get())

	u.Close()
	require.EqualValues(t, 1, closed.Load())
	require.False(t, u.Valid())

	// Idempotent: a second Close is a no-op.
	u.Close()
	require.EqualValues(t, 1, closed.Load())
}

func TestUnique_DeferredCloseCoversEarlyReturns(t *testing.T) {
	var closed atomic.Int64

	use := func(fail bool) error {
		u := NewUnique(1, func(int) { closed.Inc() })
		defer u.Close()

		if fail {
			return errEarly
		}
		v := u.Get()
		*v += 1
		return nil
	}

	require.Error(t, use(true))
	require.EqualValues(t, 1, closed.Load(), "early return must still release")
	require.NoError(t, use(false))
	require.EqualValues(t, 2, closed.Load())
}

func TestUnique_MoveTransfersOwnership(t *testing.T) {
	var closed atomic.Int64

	u := NewUnique(10, func(int) { closed.Inc() })
	v := u.Move()

	require.False(t, u.Valid())
	require.True(t, v.Valid())
	require.Equal(t, 10, *v.Get())

	// The emptied source cannot release or be read; deferred Close on it
	// composes as a no-op.
	u.Close()
	require.Zero(t, closed.Load(), "moved-from token must not finalize")
	require.Panics(t, func() { u.Get() })
	require.Panics(t, func() { u.Move() })
	require.Panics(t, func() { u.Release() })

	v.Close()
	require.EqualValues(t, 1, closed.Load())
}

func TestUnique_ReleaseDisarmsFinalizer(t *testing.T) {
	var closed atomic.Int64

	u := NewUnique("v", func(string) { closed.Inc() })
	got := u.Release()
	require.Equal(t, "v", got)
	require.False(t, u.Valid())

	u.Close()
	require.Zero(t, closed.Load(), "Release hands cleanup to the caller")
}

var errEarly = errors.New("early exit")
