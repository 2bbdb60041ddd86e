package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/soukhub/marketplace/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRetryable = errors.New("retryable")

func fastConfig(maxAttempts int) retry.Config {
	return retry.Config{
		MaxAttempts: maxAttempts,
		Backoff:     retry.LinearBackoff(time.Millisecond),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, errRetryable)
		},
	}
}

func TestDoWithResult(t *testing.T) {
	t.Run("FirstAttemptSucceeds", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(t.Context(), fastConfig(3),
			func() (int, error) {
				calls++
				return 42, nil
			})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, calls)
	})

	t.Run("SucceedsAfterRetry", func(t *testing.T) {
		calls := 0
		got, err := retry.DoWithResult(t.Context(), fastConfig(3),
			func() (int, error) {
				calls++
				if calls < 3 {
					return 0, errRetryable
				}
				return 42, nil
			})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("NonRetryableStopsImmediately", func(t *testing.T) {
		errFatal := errors.New("fatal")
		calls := 0
		_, err := retry.DoWithResult(t.Context(), fastConfig(3),
			func() (int, error) {
				calls++
				return 0, errFatal
			})
		require.Error(t, err)
		assert.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		_, err := retry.DoWithResult(t.Context(), fastConfig(2),
			func() (int, error) {
				calls++
				return 0, errRetryable
			})
		require.Error(t, err)
		assert.ErrorIs(t, err, errRetryable)
		assert.Equal(t, 2, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		calls := 0
		_, err := retry.DoWithResult(ctx, fastConfig(3),
			func() (int, error) {
				calls++
				return 0, errRetryable
			})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})
}

func TestDo(t *testing.T) {
	calls := 0
	err := retry.Do(t.Context(), fastConfig(3), func() error {
		calls++
		if calls < 2 {
			return errRetryable
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
