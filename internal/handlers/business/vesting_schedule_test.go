package business

import (
	"testing"
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchedule(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("one million over twelve months with ten percent TGE", func(t *testing.T) {
		category := &models.VestingCategory{
			TotalTokens:   d("1000000"),
			TgePercentage: d("10"),
			VestingMonths: 12,
			StartDate:     start,
			EndDate:       start.AddDate(1, 0, 0),
		}

		milestones, err := GenerateSchedule(category)
		require.NoError(t, err)
		require.Len(t, milestones, 13)

		// TGE milestone
		assert.Equal(t, 0, milestones[0].Sequence)
		assert.True(t, milestones[0].Date.Equal(start))
		assert.Equal(t, "100000", milestones[0].TokensUnlocked.String())

		// equal monthly tranches of 75,000
		for i := 1; i < 12; i++ {
			assert.Equal(t, "75000", milestones[i].TokensUnlocked.String(), "milestone %d", i)
		}

		// final milestone lands on the end date and closes the allocation
		last := milestones[len(milestones)-1]
		assert.True(t, last.Date.Equal(category.EndDate))
		assert.True(t, last.CumulativeUnlocked.Equal(category.TotalTokens))
		assert.Equal(t, "100.0000", last.PercentageUnlocked.StringFixed(4))
	})

	t.Run("cumulative is strictly increasing", func(t *testing.T) {
		category := &models.VestingCategory{
			TotalTokens:   d("777777.777"),
			TgePercentage: d("5"),
			VestingMonths: 18,
			StartDate:     start,
			EndDate:       start.AddDate(1, 6, 0),
		}

		milestones, err := GenerateSchedule(category)
		require.NoError(t, err)

		prev := decimal.Zero
		sum := decimal.Zero
		for i, m := range milestones {
			assert.True(t, m.CumulativeUnlocked.GreaterThan(prev), "milestone %d", i)
			prev = m.CumulativeUnlocked
			sum = sum.Add(m.TokensUnlocked)
		}
		assert.True(t, sum.Equal(category.TotalTokens), "sum %s != total %s", sum, category.TotalTokens)
	})

	t.Run("residue folds into the final tranche", func(t *testing.T) {
		// 100 over 3 months with no TGE does not divide evenly at any
		// finite precision
		category := &models.VestingCategory{
			TotalTokens:   d("100"),
			TgePercentage: decimal.Zero,
			VestingMonths: 3,
			StartDate:     start,
			EndDate:       start.AddDate(0, 3, 0),
		}

		milestones, err := GenerateSchedule(category)
		require.NoError(t, err)
		require.Len(t, milestones, 4)

		last := milestones[3]
		assert.True(t, last.CumulativeUnlocked.Equal(d("100")))
		total := decimal.Zero
		for _, m := range milestones {
			total = total.Add(m.TokensUnlocked)
		}
		assert.True(t, total.Equal(d("100")))
	})

	t.Run("full unlock at TGE", func(t *testing.T) {
		category := &models.VestingCategory{
			TotalTokens:   d("50000"),
			TgePercentage: d("100"),
			VestingMonths: 0,
			StartDate:     start,
			EndDate:       start,
		}

		milestones, err := GenerateSchedule(category)
		require.NoError(t, err)
		require.Len(t, milestones, 1)
		assert.True(t, milestones[0].CumulativeUnlocked.Equal(category.TotalTokens))
	})

	t.Run("rejects bad parameters", func(t *testing.T) {
		base := models.VestingCategory{
			TotalTokens:   d("1000"),
			TgePercentage: d("10"),
			VestingMonths: 6,
			StartDate:     start,
			EndDate:       start.AddDate(0, 6, 0),
		}

		zeroTokens := base
		zeroTokens.TotalTokens = decimal.Zero
		_, err := GenerateSchedule(&zeroTokens)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		overTge := base
		overTge.TgePercentage = d("101")
		_, err = GenerateSchedule(&overTge)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		backwards := base
		backwards.EndDate = start.AddDate(0, 0, -1)
		_, err = GenerateSchedule(&backwards)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		// zero months with a partial TGE strands the remainder
		stranded := base
		stranded.VestingMonths = 0
		stranded.EndDate = start
		_, err = GenerateSchedule(&stranded)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		// an end date inside the monthly boundaries would make the final
		// milestone land before its predecessors
		early := base
		early.EndDate = start.AddDate(0, 3, 0)
		_, err = GenerateSchedule(&early)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		// the single tranche of a one-month schedule still needs a span
		sameDay := base
		sameDay.VestingMonths = 1
		sameDay.EndDate = start
		_, err = GenerateSchedule(&sameDay)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("dates stay strictly increasing", func(t *testing.T) {
		category := &models.VestingCategory{
			TotalTokens:   d("500000"),
			TgePercentage: d("10"),
			VestingMonths: 6,
			StartDate:     start,
			EndDate:       start.AddDate(0, 5, 15),
		}

		milestones, err := GenerateSchedule(category)
		require.NoError(t, err)
		for i := 1; i < len(milestones); i++ {
			assert.True(t, milestones[i].Date.After(milestones[i-1].Date),
				"milestone %d date must follow milestone %d", i, i-1)
		}
		last := milestones[len(milestones)-1]
		assert.True(t, last.Date.Equal(category.EndDate))
		assert.True(t, last.CumulativeUnlocked.Equal(category.TotalTokens))
	})

	t.Run("deterministic", func(t *testing.T) {
		category := &models.VestingCategory{
			TotalTokens:   d("123456.789"),
			TgePercentage: d("7.5"),
			VestingMonths: 24,
			StartDate:     start,
			EndDate:       start.AddDate(2, 0, 0),
		}

		first, err := GenerateSchedule(category)
		require.NoError(t, err)
		second, err := GenerateSchedule(category)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.True(t, first[i].TokensUnlocked.Equal(second[i].TokensUnlocked))
			assert.True(t, first[i].Date.Equal(second[i].Date))
		}
	})
}

func TestCarryExecutedState(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	category := &models.VestingCategory{
		TotalTokens:   d("1000000"),
		TgePercentage: d("10"),
		VestingMonths: 12,
		StartDate:     start,
		EndDate:       start.AddDate(1, 0, 0),
	}

	t.Run("execution carries over on matching dates", func(t *testing.T) {
		existing, err := GenerateSchedule(category)
		require.NoError(t, err)

		executedAt := start.Add(2 * time.Hour)
		existing[0].IsExecuted = true
		existing[0].ExecutedTxHash = "0xaaa"
		existing[0].ExecutedAt = &executedAt
		existing[1].IsExecuted = true
		existing[1].ExecutedTxHash = "0xbbb"
		existing[1].ExecutedAt = &executedAt

		// same dates, new tranche sizes
		changed := *category
		changed.TgePercentage = d("20")
		generated, err := GenerateSchedule(&changed)
		require.NoError(t, err)

		require.NoError(t, carryExecutedState(existing, generated))
		assert.True(t, generated[0].IsExecuted)
		assert.Equal(t, "0xaaa", generated[0].ExecutedTxHash)
		assert.True(t, generated[1].IsExecuted)
		assert.Equal(t, "0xbbb", generated[1].ExecutedTxHash)
		for i := 2; i < len(generated); i++ {
			assert.False(t, generated[i].IsExecuted, "milestone %d", i)
		}
	})

	t.Run("rejects when an executed date disappears", func(t *testing.T) {
		existing, err := GenerateSchedule(category)
		require.NoError(t, err)

		executedAt := start.AddDate(0, 3, 0)
		existing[3].IsExecuted = true
		existing[3].ExecutedTxHash = "0xccc"
		existing[3].ExecutedAt = &executedAt

		// shorter schedule drops the executed month
		shorter := *category
		shorter.VestingMonths = 2
		shorter.EndDate = start.AddDate(0, 2, 0)
		generated, err := GenerateSchedule(&shorter)
		require.NoError(t, err)

		err = carryExecutedState(existing, generated)
		assert.ErrorIs(t, err, ErrExecutedMilestoneOrphaned)
	})

	t.Run("nothing executed carries nothing", func(t *testing.T) {
		existing, err := GenerateSchedule(category)
		require.NoError(t, err)
		generated, err := GenerateSchedule(category)
		require.NoError(t, err)

		require.NoError(t, carryExecutedState(existing, generated))
		for i := range generated {
			assert.False(t, generated[i].IsExecuted)
		}
	})
}
