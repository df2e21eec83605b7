package helpers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOTPCodeRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestVerifyOTPCode(t *testing.T) {
	future := time.Now().Add(time.Minute)

	assert.True(t, VerifyOTPCode("123456", "123456", future))
	assert.False(t, VerifyOTPCode("123457", "123456", future))
	assert.False(t, VerifyOTPCode("", "", future), "empty candidate never matches")
	assert.False(t, VerifyOTPCode("123456", "123456", time.Now().Add(-time.Second)))
}

func TestVerifyOTPCodeAtExpiryBoundary(t *testing.T) {
	// Validity is strictly before expiry; a check at or after the expiry
	// instant must fail.
	assert.False(t, VerifyOTPCode("123456", "123456", time.Now()))
}
