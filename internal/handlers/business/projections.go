package business

import (
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StakingPreview is returned by the stake preview endpoint before any
// transaction is signed. All quantities are decimals; nothing here touches
// ledger state.
type StakingPreview struct {
	PoolID           uint            `json:"pool_id"`
	Amount           decimal.Decimal `json:"amount"`
	LockPeriodDays   int             `json:"lock_period_days"`
	EffectiveAPY     decimal.Decimal `json:"effective_apy"`
	BonusApplied     bool            `json:"bonus_applied"`
	DailyReward      decimal.Decimal `json:"daily_reward"`
	LockPeriodReward decimal.Decimal `json:"lock_period_reward"`
	UserShare        decimal.Decimal `json:"user_share"`
	SchoolShare      decimal.Decimal `json:"school_share"`
	UnlockDate       time.Time       `json:"unlock_date"`
}

// RewardProjectionPoint is one step of a reward projection series.
type RewardProjectionPoint struct {
	Day         int             `json:"day"`
	Accrued     decimal.Decimal `json:"accrued"`
	UserShare   decimal.Decimal `json:"user_share"`
	SchoolShare decimal.Decimal `json:"school_share"`
}

// projectedReward is the same simple-rate formula the ledger accrues with,
// applied over whole days.
func projectedReward(amount, apy decimal.Decimal, days int) decimal.Decimal {
	return amount.
		Mul(apy).
		Mul(decimal.NewFromInt(int64(days))).
		DivRound(oneHundred.Mul(daysPerYear), 18)
}

// CalculateStakingPreview validates the prospective stake against pool rules
// and projects the reward over the lock period, including the 50/50 split
// the user would see at claim time.
func CalculateStakingPreview(db *gorm.DB, walletAddress string, poolID uint, amount decimal.Decimal, lockDays int, asOf time.Time) (*StakingPreview, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	var pool models.StakingPool
	if err := db.First(&pool, poolID).Error; err != nil {
		return nil, err
	}
	if err := ValidateStakeAmount(&pool, amount); err != nil {
		return nil, err
	}

	if lockDays <= 0 {
		lockDays = pool.LockPeriodDays
	}

	eligible, err := BonusEligible(db, wallet)
	if err != nil {
		return nil, err
	}
	apy := pool.BaseAPY
	if eligible {
		apy = apy.Add(pool.BonusAPY)
	}

	total := projectedReward(amount, apy, lockDays)
	userShare, schoolShare := SplitClaim(total)

	return &StakingPreview{
		PoolID:           poolID,
		Amount:           amount,
		LockPeriodDays:   lockDays,
		EffectiveAPY:     apy,
		BonusApplied:     eligible,
		DailyReward:      projectedReward(amount, apy, 1),
		LockPeriodReward: total,
		UserShare:        userShare,
		SchoolShare:      schoolShare,
		UnlockDate:       asOf.AddDate(0, 0, lockDays),
	}, nil
}

// GetRewardProjections produces a day-by-day accrual series for the given
// horizon, one point per 7 days plus the final day for longer horizons.
func GetRewardProjections(db *gorm.DB, walletAddress string, poolID uint, amount decimal.Decimal, days int) ([]RewardProjectionPoint, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}
	if days <= 0 || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var pool models.StakingPool
	if err := db.First(&pool, poolID).Error; err != nil {
		return nil, err
	}

	eligible, err := BonusEligible(db, wallet)
	if err != nil {
		return nil, err
	}
	apy := pool.BaseAPY
	if eligible {
		apy = apy.Add(pool.BonusAPY)
	}

	step := 1
	if days > 30 {
		step = 7
	}

	var points []RewardProjectionPoint
	for day := step; day <= days; day += step {
		accrued := projectedReward(amount, apy, day)
		userShare, schoolShare := SplitClaim(accrued)
		points = append(points, RewardProjectionPoint{
			Day:         day,
			Accrued:     accrued,
			UserShare:   userShare,
			SchoolShare: schoolShare,
		})
	}
	if len(points) == 0 || points[len(points)-1].Day != days {
		accrued := projectedReward(amount, apy, days)
		userShare, schoolShare := SplitClaim(accrued)
		points = append(points, RewardProjectionPoint{
			Day:         days,
			Accrued:     accrued,
			UserShare:   userShare,
			SchoolShare: schoolShare,
		})
	}
	return points, nil
}
