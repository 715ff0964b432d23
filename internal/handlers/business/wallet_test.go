package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWallet(t *testing.T) {
	t.Run("checksummed address lowercases", func(t *testing.T) {
		got, err := NormalizeWallet("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
		require.NoError(t, err)
		assert.Equal(t, "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", got)
	})

	t.Run("already lowercase is unchanged", func(t *testing.T) {
		addr := "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
		got, err := NormalizeWallet(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, got)
	})

	t.Run("mixed case variants resolve to the same key", func(t *testing.T) {
		a, err := NormalizeWallet("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
		require.NoError(t, err)
		b, err := NormalizeWallet("0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("invalid addresses rejected", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"0x",
			"not-an-address",
			"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae",   // too short
			"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed1", // too long
			"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg",  // non-hex
		} {
			_, err := NormalizeWallet(bad)
			assert.ErrorIs(t, err, ErrInvalidWalletAddress, "input %q", bad)
		}
	})
}
