package business

import (
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GenerateSchedule is a pure, deterministic function of the category
// parameters. Milestone 0 unlocks the TGE percentage at the start date; the
// remainder vests in equal monthly tranches, with the final tranche landing
// on the category end date. Any sub-precision residue from dividing the
// remainder is folded into the final tranche so the last milestone's
// cumulative total equals TotalTokens exactly.
func GenerateSchedule(category *models.VestingCategory) ([]models.VestingMilestone, error) {
	if category.TotalTokens.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if category.TgePercentage.IsNegative() || category.TgePercentage.GreaterThan(oneHundred) {
		return nil, ErrInvalidAmount
	}
	if category.VestingMonths < 0 || category.EndDate.Before(category.StartDate) {
		return nil, ErrInvalidAmount
	}
	// The final tranche lands on EndDate, so EndDate must fall after the
	// second-to-last month boundary or the date sequence goes backwards.
	if category.VestingMonths > 0 &&
		!category.EndDate.After(category.StartDate.AddDate(0, category.VestingMonths-1, 0)) {
		return nil, ErrInvalidAmount
	}

	tgeAmount := category.TotalTokens.Mul(category.TgePercentage).DivRound(oneHundred, 18)
	remaining := category.TotalTokens.Sub(tgeAmount)

	milestones := []models.VestingMilestone{{
		CategoryID:         category.ID,
		Sequence:           0,
		Date:               category.StartDate,
		TokensUnlocked:     tgeAmount,
		CumulativeUnlocked: tgeAmount,
		PercentageUnlocked: percentageOf(tgeAmount, category.TotalTokens),
	}}

	if category.VestingMonths == 0 {
		// Everything unlocks at TGE; conservation requires the single
		// milestone to cover the full allocation.
		if remaining.Sign() != 0 {
			return nil, ErrInvalidAmount
		}
		return milestones, nil
	}

	tranche := remaining.DivRound(decimal.NewFromInt(int64(category.VestingMonths)), 18)
	cumulative := tgeAmount

	for month := 1; month <= category.VestingMonths; month++ {
		date := category.StartDate.AddDate(0, month, 0)
		unlocked := tranche
		if month == category.VestingMonths {
			date = category.EndDate
			unlocked = category.TotalTokens.Sub(cumulative)
		}
		if unlocked.IsNegative() {
			return nil, ErrNegativeResultRejected
		}
		cumulative = cumulative.Add(unlocked)
		milestones = append(milestones, models.VestingMilestone{
			CategoryID:         category.ID,
			Sequence:           month,
			Date:               date,
			TokensUnlocked:     unlocked,
			CumulativeUnlocked: cumulative,
			PercentageUnlocked: percentageOf(cumulative, category.TotalTokens),
		})
	}

	return milestones, nil
}

func percentageOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(oneHundred).DivRound(total, 4)
}

// carryExecutedState copies execution state from old milestones onto new
// ones that fall on the same date. Every executed old milestone must find a
// home in the new schedule or the carry-over fails.
func carryExecutedState(existing, generated []models.VestingMilestone) error {
	executedByDate := make(map[time.Time]*models.VestingMilestone)
	for i := range existing {
		if existing[i].IsExecuted {
			executedByDate[existing[i].Date.UTC()] = &existing[i]
		}
	}

	matched := 0
	for i := range generated {
		if prev, ok := executedByDate[generated[i].Date.UTC()]; ok {
			generated[i].IsExecuted = true
			generated[i].ExecutedTxHash = prev.ExecutedTxHash
			generated[i].ExecutedAt = prev.ExecutedAt
			matched++
		}
	}
	if matched != len(executedByDate) {
		return ErrExecutedMilestoneOrphaned
	}
	return nil
}

// RegenerateSchedule replaces a category's milestones after a parameter
// change. The schedule is regenerated, never patched: old rows are dropped
// and rebuilt, with execution state carried over to new milestones that fall
// on the same date. If an executed milestone's date no longer exists in the
// new schedule the whole regeneration is rejected, forcing an explicit
// operator decision instead of silently losing an on-chain unlock.
func RegenerateSchedule(db *gorm.DB, categoryID uint) ([]models.VestingMilestone, error) {
	var milestones []models.VestingMilestone
	err := db.Transaction(func(tx *gorm.DB) error {
		var category models.VestingCategory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&category, categoryID).Error; err != nil {
			return err
		}

		var existing []models.VestingMilestone
		if err := tx.Where("category_id = ?", categoryID).Find(&existing).Error; err != nil {
			return err
		}

		generated, err := GenerateSchedule(&category)
		if err != nil {
			return err
		}

		if err := carryExecutedState(existing, generated); err != nil {
			return err
		}

		if err := tx.Where("category_id = ?", categoryID).
			Delete(&models.VestingMilestone{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&generated).Error; err != nil {
			return err
		}
		milestones = generated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return milestones, nil
}

// MarkExecuted records the on-chain unlock transaction for a milestone.
// Idempotent on the same hash; a second call with a different hash fails.
func MarkExecuted(db *gorm.DB, milestoneID uint, txHash string, asOf time.Time) (*models.VestingMilestone, error) {
	var milestone models.VestingMilestone
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&milestone, milestoneID).Error; err != nil {
			return err
		}
		if milestone.IsExecuted {
			if milestone.ExecutedTxHash == txHash {
				return nil
			}
			return ErrAlreadyExecuted
		}

		milestone.IsExecuted = true
		milestone.ExecutedTxHash = txHash
		milestone.ExecutedAt = &asOf
		return tx.Model(&milestone).Updates(map[string]interface{}{
			"is_executed":      true,
			"executed_tx_hash": txHash,
			"executed_at":      asOf,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}
