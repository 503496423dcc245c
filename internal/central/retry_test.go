package central

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryPolicyDefaults(t *testing.T) {
	policy := RetryPolicy{}
	require.Equal(t, 1, policy.maxRetries())

	bo := policy.newBackOff()
	require.Equal(t, 2*time.Second, bo.NextBackOff())
}

func TestRetryPolicyBackOffGrowth(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 3, InitialWait: time.Second, MaxWait: 3 * time.Second}
	bo := policy.newBackOff()

	require.Equal(t, time.Second, bo.NextBackOff())
	require.Equal(t, 1500*time.Millisecond, bo.NextBackOff())
	require.Equal(t, 2250*time.Millisecond, bo.NextBackOff())
}

func TestSleepCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sleep(ctx, time.Minute), context.Canceled)

	require.NoError(t, sleep(context.Background(), 0))
}
