package business

import (
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// The aggregator is a single periodic writer. Each Record* call inserts one
// immutable row and flips the previous IsLatest flag inside one transaction,
// so readers never observe zero or two latest rows in a series. A failed run
// rolls back whole and leaves the previous latest row intact. Nothing here
// mutates the source ledgers.

func flipLatest(tx *gorm.DB, model interface{}) error {
	return tx.Model(model).Where("is_latest = ?", true).Update("is_latest", false).Error
}

// stakingTotals rolls the stake ledger up without advancing any accrual
// checkpoint: pending rewards are derived with the pure accrual function.
func stakingTotals(db *gorm.DB, asOf time.Time) (totalStaked, accrued decimal.Decimal, stakers int64, err error) {
	var stakes []models.UserStake
	if err = db.Where("is_active = ?", true).Preload("Pool").Find(&stakes).Error; err != nil {
		return
	}

	totalStaked = decimal.Zero
	accrued = decimal.Zero
	wallets := make(map[string]struct{})
	for i := range stakes {
		stake := &stakes[i]
		totalStaked = totalStaked.Add(stake.StakedAmount)
		wallets[stake.WalletAddress] = struct{}{}

		pending := decimal.Zero
		if stake.Pool != nil {
			eligible, berr := BonusEligible(db, stake.WalletAddress)
			if berr != nil {
				err = berr
				return
			}
			pending = PendingReward(stake.StakedAmount, stake.Pool.BaseAPY, stake.Pool.BonusAPY, eligible, stake.LastRewardCalculation, asOf)
		}
		accrued = accrued.Add(stake.AccruedRewards).Add(pending)
	}
	stakers = int64(len(wallets))
	return
}

func sumClaims(db *gorm.DB) (decimal.Decimal, error) {
	var claims []models.StakingRewardClaim
	if err := db.Find(&claims).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range claims {
		total = total.Add(c.ClaimedAmount)
	}
	return total, nil
}

func sumSchoolDistributions(db *gorm.DB) (decimal.Decimal, error) {
	var distributions []models.SchoolRewardDistribution
	if err := db.Find(&distributions).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, d := range distributions {
		total = total.Add(d.Amount)
	}
	return total, nil
}

// RecordAnalyticsSnapshot materializes the token/staking rollup. External
// feed values (token price, total supply) are passed in already fetched; the
// aggregator never blocks on network I/O.
func RecordAnalyticsSnapshot(db *gorm.DB, tokenPriceUsd, totalSupply decimal.Decimal, asOf time.Time) (*models.AnalyticsSnapshot, error) {
	totalStaked, accrued, stakers, err := stakingTotals(db, asOf)
	if err != nil {
		return nil, err
	}
	claimed, err := sumClaims(db)
	if err != nil {
		return nil, err
	}
	schoolPaid, err := sumSchoolDistributions(db)
	if err != nil {
		return nil, err
	}

	snapshot := models.AnalyticsSnapshot{
		TokenPriceUsd:   tokenPriceUsd,
		MarketCapUsd:    tokenPriceUsd.Mul(totalSupply),
		TotalStaked:     totalStaked,
		TotalStakers:    stakers,
		RewardsAccrued:  accrued,
		RewardsClaimed:  claimed,
		SchoolPaidTotal: schoolPaid,
		SnapshotTime:    asOf,
		IsLatest:        true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := flipLatest(tx, &models.AnalyticsSnapshot{}); err != nil {
			return err
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func RecordTreasurySnapshot(db *gorm.DB, balanceTokens, tokenPriceUsd, inflowTokens, outflowTokens decimal.Decimal, asOf time.Time) (*models.TreasurySnapshot, error) {
	if balanceTokens.IsNegative() {
		return nil, ErrNegativeResultRejected
	}
	snapshot := models.TreasurySnapshot{
		BalanceTokens: balanceTokens,
		BalanceUsd:    balanceTokens.Mul(tokenPriceUsd),
		InflowTokens:  inflowTokens,
		OutflowTokens: outflowTokens,
		SnapshotTime:  asOf,
		IsLatest:      true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := flipLatest(tx, &models.TreasurySnapshot{}); err != nil {
			return err
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// RecordBurnSnapshot appends the period's burn on top of the running total
// from the previous snapshot.
func RecordBurnSnapshot(db *gorm.DB, burnedTokens decimal.Decimal, asOf time.Time) (*models.BurnSnapshot, error) {
	if burnedTokens.IsNegative() {
		return nil, ErrNegativeResultRejected
	}
	snapshot := models.BurnSnapshot{
		BurnedTokens: burnedTokens,
		BurnedTotal:  burnedTokens,
		SnapshotTime: asOf,
		IsLatest:     true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var previous models.BurnSnapshot
		err := tx.Order("snapshot_time DESC").First(&previous).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == nil {
			snapshot.BurnedTotal = previous.BurnedTotal.Add(burnedTokens)
		}
		if err := flipLatest(tx, &models.BurnSnapshot{}); err != nil {
			return err
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// RecordSupplySnapshot derives locked and circulating supply from the stake
// ledger and the vesting schedule: unexecuted vesting tranches and actively
// staked tokens count as locked.
func RecordSupplySnapshot(db *gorm.DB, totalSupply decimal.Decimal, asOf time.Time) (*models.SupplySnapshot, error) {
	totalStaked, _, _, err := stakingTotals(db, asOf)
	if err != nil {
		return nil, err
	}

	var milestones []models.VestingMilestone
	if err := db.Find(&milestones).Error; err != nil {
		return nil, err
	}
	vestedUnlocked := decimal.Zero
	vestingLocked := decimal.Zero
	for _, m := range milestones {
		if m.IsExecuted {
			vestedUnlocked = vestedUnlocked.Add(m.TokensUnlocked)
		} else {
			vestingLocked = vestingLocked.Add(m.TokensUnlocked)
		}
	}

	locked := totalStaked.Add(vestingLocked)
	circulating := totalSupply.Sub(locked)
	if circulating.IsNegative() {
		return nil, ErrNegativeResultRejected
	}

	snapshot := models.SupplySnapshot{
		TotalSupply:       totalSupply,
		CirculatingSupply: circulating,
		LockedSupply:      locked,
		VestedUnlocked:    vestedUnlocked,
		SnapshotTime:      asOf,
		IsLatest:          true,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := flipLatest(tx, &models.SupplySnapshot{}); err != nil {
			return err
		}
		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// RecordLiquidityPoolSnapshots rolls up every active pool. Each pool is its
// own series: the latest flip is scoped to the pool ID.
func RecordLiquidityPoolSnapshots(db *gorm.DB, asOf time.Time) ([]models.LiquidityPoolSnapshot, error) {
	var pools []models.LiquidityPool
	if err := db.Where("is_active = ?", true).Find(&pools).Error; err != nil {
		return nil, err
	}

	snapshots := make([]models.LiquidityPoolSnapshot, 0, len(pools))
	for i := range pools {
		pool := &pools[i]
		snapshot := models.LiquidityPoolSnapshot{
			PoolID:           pool.ID,
			Token0Reserve:    pool.Token0Reserve,
			Token1Reserve:    pool.Token1Reserve,
			Price:            pool.CurrentPrice(),
			TotalValueLocked: pool.TotalValueLocked(),
			Volume24h:        pool.Volume24h,
			SnapshotTime:     asOf,
			IsLatest:         true,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.LiquidityPoolSnapshot{}).
				Where("pool_id = ? AND is_latest = ?", pool.ID, true).
				Update("is_latest", false).Error; err != nil {
				return err
			}
			return tx.Create(&snapshot).Error
		})
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
