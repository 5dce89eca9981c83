package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	t.Run("SkipError", func(t *testing.T) {
		var err error = &SkipError{Skipped: 12}

		require.ErrorIs(t, err, ErrOutOfSync)
		require.NotErrorIs(t, err, ErrNeedMoreData)
		require.Contains(t, err.Error(), "12")
	})

	t.Run("WrongSerialError", func(t *testing.T) {
		var err error = &WrongSerialError{Expected: 1, Actual: 2}

		require.ErrorIs(t, err, ErrWrongSerial)
		require.Equal(t, "ogg: page serial 2 does not match stream serial 1", err.Error())
	})

	t.Run("BadVersionError", func(t *testing.T) {
		var err error = &BadVersionError{Version: 3}

		require.ErrorIs(t, err, ErrBadVersion)
		require.Contains(t, err.Error(), "3")
	})

	t.Run("InternalError", func(t *testing.T) {
		err := &InternalError{Op: "PageOut"}
		require.ErrorIs(t, err, ErrInternalInvariant)
		require.Equal(t, "ogg: internal invariant violation in PageOut", err.Error())

		err.Detail = "zero segments"
		require.Equal(t, "ogg: internal invariant violation in PageOut: zero segments", err.Error())
	})
}

func TestTypedErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("demux: %w", &WrongSerialError{Expected: 7, Actual: 9})

	require.ErrorIs(t, wrapped, ErrWrongSerial)

	var serialErr *WrongSerialError
	require.True(t, errors.As(wrapped, &serialErr))
	require.Equal(t, int32(7), serialErr.Expected)
	require.Equal(t, int32(9), serialErr.Actual)
}

func TestIsTransient(t *testing.T) {
	require.True(t, IsTransient(ErrNeedMoreData))
	require.True(t, IsTransient(fmt.Errorf("page out: %w", ErrNeedMoreData)))
	require.False(t, IsTransient(ErrOutOfSync))
	require.False(t, IsTransient(nil))
}
