package arbitrary

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	hostval "github.com/branched-services/go-hostval"
)

// recordReports installs a reporter collecting panic values for the
// duration of the test.
func recordReports(t *testing.T) *[]any {
	t.Helper()
	var reports []any
	prev := SetPanicReporter(func(recovered any, _ []byte) {
		reports = append(reports, recovered)
	})
	t.Cleanup(func() { SetPanicReporter(prev) })
	return &reports
}

func TestCatchPanic(t *testing.T) {
	reports := recordReports(t)

	t.Run("no panic", func(t *testing.T) {
		want := errors.New("plain")
		require.ErrorIs(t, CatchPanic(func() error { return want }), want)
		require.NoError(t, CatchPanic(func() error { return nil }))
	})

	t.Run("panic becomes error", func(t *testing.T) {
		err := CatchPanic(func() error {
			hostval.NewEnv().MustSymbol("not a symbol")
			return nil
		})
		var pe *PanicError
		require.ErrorAs(t, err, &pe)
		require.NotEmpty(t, pe.Stack)
		require.ErrorIs(t, err, hostval.ErrInvalidShape)
	})

	t.Run("non-error panic value", func(t *testing.T) {
		err := CatchPanic(func() error { panic("boom") })
		require.EqualError(t, err, "arbitrary: recovered panic: boom")
		require.Nil(t, errors.Unwrap(err))
	})

	t.Run("nested protect stays muted", func(t *testing.T) {
		err := CatchPanic(func() error {
			inner := Protect(func() error { panic("inner") })
			require.Error(t, inner)
			return nil
		})
		require.NoError(t, err)
	})

	require.Empty(t, *reports)
	require.Zero(t, muted.Load())
}

func TestProtect(t *testing.T) {
	reports := recordReports(t)

	require.NoError(t, Protect(func() error { return nil }))

	err := Protect(func() error { panic("unexpected") })
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "unexpected", pe.Value)
	require.Equal(t, []any{"unexpected"}, *reports)
}

func TestSetPanicReporterNilRestoresDefault(t *testing.T) {
	prev := SetPanicReporter(nil)
	defer SetPanicReporter(prev)

	require.NotNil(t, SetPanicReporter(nil))
}
