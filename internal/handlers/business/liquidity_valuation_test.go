package business

import (
	"testing"
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecimalSqrt(t *testing.T) {
	cases := map[string]string{
		"4":    "2",
		"9":    "3",
		"0.25": "0.5",
		"1":    "1",
	}
	for in, want := range cases {
		got := decimalSqrt(d(in))
		assert.True(t, got.Equal(d(want)), "sqrt(%s) = %s, want %s", in, got, want)
	}

	t.Run("irrational roots are close", func(t *testing.T) {
		got := decimalSqrt(d("2"))
		diff := got.Mul(got).Sub(d("2")).Abs()
		assert.True(t, diff.LessThan(d("0.000000000000001")), "sqrt(2)^2 off by %s", diff)
	})

	t.Run("non-positive input", func(t *testing.T) {
		assert.True(t, decimalSqrt(decimal.Zero).IsZero())
		assert.True(t, decimalSqrt(d("-4")).IsZero())
	})
}

func TestImpermanentLossFraction(t *testing.T) {
	t.Run("zero at unchanged price", func(t *testing.T) {
		il := ImpermanentLossFraction(d("2"), d("2"))
		assert.True(t, il.IsZero())
	})

	t.Run("price quadrupled", func(t *testing.T) {
		// r = 4: il = 1 - 2*2/5 = 0.2
		il := ImpermanentLossFraction(d("1"), d("4"))
		assert.Equal(t, "0.2000", il.StringFixed(4))
	})

	t.Run("symmetric in price direction", func(t *testing.T) {
		// r = 4 and r = 1/4 give the same loss
		up := ImpermanentLossFraction(d("1"), d("4"))
		down := ImpermanentLossFraction(d("4"), d("1"))
		diff := up.Sub(down).Abs()
		assert.True(t, diff.LessThan(d("0.000000000001")), "asymmetry %s", diff)
	})

	t.Run("never negative", func(t *testing.T) {
		for _, r := range []string{"0.5", "0.9", "1.1", "2", "10"} {
			il := ImpermanentLossFraction(d("1"), d(r))
			assert.False(t, il.IsNegative(), "r=%s: il %s", r, il)
		}
	})

	t.Run("unusable prices give zero", func(t *testing.T) {
		assert.True(t, ImpermanentLossFraction(decimal.Zero, d("2")).IsZero())
		assert.True(t, ImpermanentLossFraction(d("2"), decimal.Zero).IsZero())
		assert.True(t, ImpermanentLossFraction(d("-1"), d("2")).IsZero())
	})
}

func TestPoolPricing(t *testing.T) {
	pool := &models.LiquidityPool{
		Token0Reserve:  d("1000000"),   // TEACH
		Token1Reserve:  d("500"),       // ETH
		LpTokenSupply:  d("22360"),
		FeePercentage:  d("0.003"),
		Volume24h:      d("250000"),
		Token1PriceUsd: d("2000"),
	}

	t.Run("current price from reserve ratio", func(t *testing.T) {
		// 500 / 1,000,000 = 0.0005 ETH per TEACH
		assert.Equal(t, "0.0005", pool.CurrentPrice().String())
	})

	t.Run("zero reserve guard", func(t *testing.T) {
		empty := &models.LiquidityPool{}
		assert.True(t, empty.CurrentPrice().IsZero())
	})

	t.Run("tvl values both sides", func(t *testing.T) {
		// token0: 1,000,000 * 0.0005 * 2000 = 1,000,000 USD
		// token1: 500 * 2000 = 1,000,000 USD
		assert.Equal(t, "2000000", pool.TotalValueLocked().String())
	})

	t.Run("apy estimate", func(t *testing.T) {
		// 250000 * 0.003 * 365 / 2000000 * 100
		expected := d("250000").Mul(d("0.003")).Mul(d("365")).
			DivRound(d("2000000"), 18).Mul(d("100"))
		assert.True(t, PoolAPYEstimate(pool).Equal(expected))
	})

	t.Run("apy estimate with zero tvl", func(t *testing.T) {
		assert.True(t, PoolAPYEstimate(&models.LiquidityPool{}).IsZero())
	})
}

func TestNetPnLFormula(t *testing.T) {
	// impermanent loss is a reported metric; it is already embedded in the
	// current value, so net P&L adds fees on top of the raw value change
	initial := d("10000")
	current := d("9500")
	fees := d("300")

	netPnL := current.Sub(initial).Add(fees)
	assert.Equal(t, "-200", netPnL.String())

	// the reported loss figure never changes that arithmetic
	ilReported := ImpermanentLossFraction(d("1"), d("4")).Mul(initial)
	assert.True(t, ilReported.GreaterThan(decimal.Zero))
	assert.Equal(t, "-200", current.Sub(initial).Add(fees).String())
}

func TestRevalueGuards(t *testing.T) {
	// both guards fire before any database access
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("inactive position", func(t *testing.T) {
		position := &models.UserLiquidityPosition{IsActive: false}
		pool := &models.LiquidityPool{ReservesUpdated: now}

		err := Revalue(nil, position, pool, now)
		assert.ErrorIs(t, err, ErrPositionInactive)
	})

	t.Run("stale reserves", func(t *testing.T) {
		position := &models.UserLiquidityPosition{IsActive: true}
		pool := &models.LiquidityPool{ReservesUpdated: now.Add(-ReserveFreshnessBound() - time.Second)}

		err := Revalue(nil, position, pool, now)
		assert.ErrorIs(t, err, ErrStaleInput)
	})
}
