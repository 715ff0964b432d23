package business

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitClaim(t *testing.T) {
	t.Run("even amount splits exactly in half", func(t *testing.T) {
		user, school := SplitClaim(d("100"))
		assert.Equal(t, "50", user.String())
		assert.Equal(t, "50", school.String())
	})

	t.Run("shares always sum to the claim", func(t *testing.T) {
		cases := []string{
			"0",
			"1",
			"0.000000000000000001",
			"0.000000000000000003",
			"123.456789012345678901",
			"82.191780821917808219",
			"999999999.999999999999999999",
		}
		for _, c := range cases {
			claim := d(c)
			user, school := SplitClaim(claim)
			assert.True(t, user.Add(school).Equal(claim), "claim %s: %s + %s != %s", c, user, school, claim)
		}
	})

	t.Run("residue lands on the school side", func(t *testing.T) {
		// one smallest unit cannot be halved at ledger precision
		user, school := SplitClaim(d("0.000000000000000001"))
		assert.True(t, user.IsZero())
		assert.Equal(t, "0.000000000000000001", school.String())
		assert.True(t, school.GreaterThanOrEqual(user))
	})

	t.Run("odd amount favors the school by one unit", func(t *testing.T) {
		user, school := SplitClaim(d("0.000000000000000003"))
		assert.Equal(t, "0.000000000000000001", user.String())
		assert.Equal(t, "0.000000000000000002", school.String())
	})

	t.Run("zero claim", func(t *testing.T) {
		user, school := SplitClaim(decimal.Zero)
		assert.True(t, user.IsZero())
		assert.True(t, school.IsZero())
	})

	t.Run("shares differ by at most one smallest unit", func(t *testing.T) {
		unit := d("0.000000000000000001")
		for _, c := range []string{"1", "3.3333333333", "7.000000000000000001", "0.1"} {
			user, school := SplitClaim(d(c))
			diff := school.Sub(user)
			assert.False(t, diff.IsNegative(), "claim %s: user share exceeds school share", c)
			assert.True(t, diff.LessThanOrEqual(unit), "claim %s: diff %s", c, diff)
		}
	})
}
