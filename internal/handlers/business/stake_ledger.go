package business

import (
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// secondsPerYear is the denominator of the simple (non-compounding) accrual
// rate: APY percent / 100 / 365 per day, applied at second resolution.
var secondsPerYear = decimal.NewFromInt(365 * 86400)

var oneHundred = decimal.NewFromInt(100)

// PendingReward is the pure accrual function: the reward earned between
// lastRewardCalculation and asOf, derivable at any time from the stake and
// pool parameters alone. A missed scheduler tick never loses reward because
// nothing here depends on when the function last ran.
func PendingReward(stakedAmount, baseAPY, bonusAPY decimal.Decimal, bonusEligible bool, lastCalculation, asOf time.Time) decimal.Decimal {
	if !asOf.After(lastCalculation) {
		return decimal.Zero
	}

	apy := baseAPY
	if bonusEligible {
		apy = apy.Add(bonusAPY)
	}

	elapsedSeconds := decimal.NewFromInt(int64(asOf.Sub(lastCalculation) / time.Second))
	return stakedAmount.
		Mul(apy).
		Mul(elapsedSeconds).
		DivRound(oneHundred.Mul(secondsPerYear), 18)
}

// BonusEligible reports whether the wallet currently qualifies for the pool's
// bonus APY: a wallet earns the bonus while it has an active school
// beneficiary selected.
func BonusEligible(db *gorm.DB, walletAddress string) (bool, error) {
	var count int64
	err := db.Model(&models.UserStakingBeneficiary{}).
		Where("wallet_address = ? AND is_active = ?", walletAddress, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Accrue folds the pending reward into the stake's accrued balance and
// advances the checkpoint. Calling it with asOf at or before the checkpoint
// is a no-op, not an error, so redundant calls are always safe. The caller
// owns the transaction and the row lock.
func Accrue(tx *gorm.DB, stake *models.UserStake, pool *models.StakingPool, asOf time.Time) error {
	if !stake.IsActive {
		return nil
	}
	if !asOf.After(stake.LastRewardCalculation) {
		return nil
	}

	eligible, err := BonusEligible(tx, stake.WalletAddress)
	if err != nil {
		return err
	}

	pending := PendingReward(stake.StakedAmount, pool.BaseAPY, pool.BonusAPY, eligible, stake.LastRewardCalculation, asOf)
	if pending.IsNegative() {
		return ErrNegativeResultRejected
	}

	stake.AccruedRewards = stake.AccruedRewards.Add(pending)
	stake.LastRewardCalculation = asOf

	return tx.Model(stake).Updates(map[string]interface{}{
		"accrued_rewards":         stake.AccruedRewards,
		"last_reward_calculation": stake.LastRewardCalculation,
	}).Error
}

// ValidateStakeAmount checks a prospective stake against the pool limits
// without touching any ledger state, so previews share the exact rules the
// mutation path enforces.
func ValidateStakeAmount(pool *models.StakingPool, amount decimal.Decimal) error {
	if !pool.IsActive {
		return ErrPoolInactive
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if amount.LessThan(pool.MinStake) {
		return ErrBelowMinimumStake
	}
	if amount.GreaterThan(pool.MaxStake) {
		return ErrAboveMaximumStake
	}
	if pool.TotalStaked.Add(amount).GreaterThan(pool.MaxPoolSize) {
		return ErrPoolCapacityExceeded
	}
	return nil
}

// Stake opens a position on a confirmed stake transaction. The pool row is
// locked so two concurrent stakes cannot both pass the capacity check.
func Stake(db *gorm.DB, walletAddress string, poolID uint, amount decimal.Decimal, txHash string, stakeDate time.Time) (*models.UserStake, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	var stake *models.UserStake
	err = db.Transaction(func(tx *gorm.DB) error {
		var pool models.StakingPool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pool, poolID).Error; err != nil {
			return err
		}

		if err := ValidateStakeAmount(&pool, amount); err != nil {
			return err
		}

		stake = &models.UserStake{
			WalletAddress:         wallet,
			PoolID:                poolID,
			StakedAmount:          amount,
			AccruedRewards:        decimal.Zero,
			ClaimedRewards:        decimal.Zero,
			StakeDate:             stakeDate,
			LastRewardCalculation: stakeDate,
			StakeTxHash:           txHash,
			IsActive:              true,
		}
		if err := tx.Create(stake).Error; err != nil {
			return err
		}

		pool.TotalStaked = pool.TotalStaked.Add(amount)
		return tx.Model(&pool).Update("total_staked", pool.TotalStaked).Error
	})
	if err != nil {
		return nil, err
	}
	return stake, nil
}

// Unstake closes a position once the lock period has elapsed. It accrues one
// final time as of the unstake moment; the frozen accrued balance stays
// claimable afterwards (unclaimed rewards are not forfeited).
func Unstake(db *gorm.DB, stakeID uint, asOf time.Time) (*models.UserStake, error) {
	var stake models.UserStake
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stake, stakeID).Error; err != nil {
			return err
		}
		if !stake.IsActive {
			return ErrStakeInactive
		}

		var pool models.StakingPool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pool, stake.PoolID).Error; err != nil {
			return err
		}

		lockEnd := stake.StakeDate.AddDate(0, 0, pool.LockPeriodDays)
		if asOf.Before(lockEnd) {
			return ErrLockPeriodActive
		}

		if err := Accrue(tx, &stake, &pool, asOf); err != nil {
			return err
		}

		unstakeDate := asOf
		stake.IsActive = false
		stake.UnstakeDate = &unstakeDate
		if err := tx.Model(&stake).Updates(map[string]interface{}{
			"is_active":    false,
			"unstake_date": unstakeDate,
		}).Error; err != nil {
			return err
		}

		pool.TotalStaked = pool.TotalStaked.Sub(stake.StakedAmount)
		if pool.TotalStaked.IsNegative() {
			return ErrNegativeResultRejected
		}
		return tx.Model(&pool).Update("total_staked", pool.TotalStaked).Error
	})
	if err != nil {
		return nil, err
	}
	return &stake, nil
}
