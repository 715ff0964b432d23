package business

import (
	"math/big"
	"os"
	"strconv"
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	one         = decimal.NewFromInt(1)
	daysPerYear = decimal.NewFromInt(365)
)

// ReserveFreshnessBound is the maximum age of pool reserves a revaluation
// will accept. Tunable via RESERVE_FRESHNESS_SECONDS.
func ReserveFreshnessBound() time.Duration {
	if s := os.Getenv("RESERVE_FRESHNESS_SECONDS"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 5 * time.Minute
}

// decimalSqrt computes the square root at 18-place precision via big.Float,
// keeping binary floats out of the valuation path.
func decimalSqrt(d decimal.Decimal) decimal.Decimal {
	if d.Sign() <= 0 {
		return decimal.Zero
	}
	f, _, err := big.ParseFloat(d.String(), 10, 128, big.ToNearestEven)
	if err != nil {
		return decimal.Zero
	}
	root := new(big.Float).SetPrec(128).Sqrt(f)
	out, err := decimal.NewFromString(root.Text('f', 18))
	if err != nil {
		return decimal.Zero
	}
	return out
}

// ImpermanentLossFraction is the standard constant-product IL formula:
// with r = currentPrice / entryPrice, il = 1 - 2*sqrt(r)/(1+r).
// Returns zero when r = 1 or either price is unusable, and never goes
// negative.
func ImpermanentLossFraction(entryPrice, currentPrice decimal.Decimal) decimal.Decimal {
	if entryPrice.Sign() <= 0 || currentPrice.Sign() <= 0 {
		return decimal.Zero
	}
	r := currentPrice.DivRound(entryPrice, 18)
	if r.Equal(one) {
		return decimal.Zero
	}
	il := one.Sub(two.Mul(decimalSqrt(r)).DivRound(one.Add(r), 18))
	if il.IsNegative() {
		return decimal.Zero
	}
	return il
}

// FeesEarnedUsd is the running sum of CLAIM_FEES transaction amounts for the
// position. Fees are never estimated from APY.
func FeesEarnedUsd(db *gorm.DB, positionID uint) (decimal.Decimal, error) {
	var txs []models.LiquidityTransaction
	err := db.Where("position_id = ? AND tx_type = ?", positionID, models.LiquidityTxClaimFees).
		Find(&txs).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.AmountUsd)
	}
	return total, nil
}

// Revalue recomputes a position's holdings and valuation from the pool's
// live reserves. Impermanent loss is reported as a metric only; it is
// already embedded in CurrentValueUsd through the reserve-ratio holdings, so
// net P&L must not subtract it a second time:
//
//	netPnL = currentValueUsd - initialValueUsd + feesEarnedUsd
//
// Reads are pure over a consistent snapshot of inputs; this function only
// persists the refreshed figures on the position row.
func Revalue(db *gorm.DB, position *models.UserLiquidityPosition, pool *models.LiquidityPool, asOf time.Time) error {
	if !position.IsActive {
		return ErrPositionInactive
	}
	if asOf.Sub(pool.ReservesUpdated) > ReserveFreshnessBound() {
		return ErrStaleInput
	}

	// Current holdings are the LP share of the live reserves.
	if pool.LpTokenSupply.Sign() > 0 {
		share := position.LpTokenAmount.DivRound(pool.LpTokenSupply, 18)
		position.Token0Amount = pool.Token0Reserve.Mul(share)
		position.Token1Amount = pool.Token1Reserve.Mul(share)
	}

	price := pool.CurrentPrice()
	token0Usd := position.Token0Amount.Mul(price).Mul(pool.Token1PriceUsd)
	token1Usd := position.Token1Amount.Mul(pool.Token1PriceUsd)
	position.CurrentValueUsd = token0Usd.Add(token1Usd)

	ilFraction := ImpermanentLossFraction(position.EntryPrice, price)
	position.ImpermanentLoss = ilFraction.Mul(position.InitialValueUsd)

	fees, err := FeesEarnedUsd(db, position.ID)
	if err != nil {
		return err
	}
	position.FeesEarnedUsd = fees
	position.NetPnL = position.CurrentValueUsd.Sub(position.InitialValueUsd).Add(fees)
	position.LastValuation = asOf

	return db.Model(position).Updates(map[string]interface{}{
		"token0_amount":     position.Token0Amount,
		"token1_amount":     position.Token1Amount,
		"current_value_usd": position.CurrentValueUsd,
		"impermanent_loss":  position.ImpermanentLoss,
		"fees_earned_usd":   position.FeesEarnedUsd,
		"net_pnl":           position.NetPnL,
		"last_valuation":    position.LastValuation,
	}).Error
}

// PoolAPYEstimate extrapolates 24h fee income over a year against the
// pool's TVL. Display only; position valuation never uses it.
func PoolAPYEstimate(pool *models.LiquidityPool) decimal.Decimal {
	tvl := pool.TotalValueLocked()
	if tvl.IsZero() {
		return decimal.Zero
	}
	return pool.Volume24h.
		Mul(pool.FeePercentage).
		Mul(daysPerYear).
		DivRound(tvl, 18).
		Mul(oneHundred)
}

// UpdatePoolReserves applies a DEX feed tick. Ticks are ordered by their own
// timestamp, never by arrival order: anything at or before the last applied
// timestamp is dropped silently.
func UpdatePoolReserves(db *gorm.DB, poolID uint, token0Reserve, token1Reserve, volume24h, token1PriceUsd decimal.Decimal, timestamp time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var pool models.LiquidityPool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pool, poolID).Error; err != nil {
			return err
		}
		if !timestamp.After(pool.ReservesUpdated) {
			return nil
		}
		if token0Reserve.IsNegative() || token1Reserve.IsNegative() {
			return ErrNegativeResultRejected
		}
		return tx.Model(&pool).Updates(map[string]interface{}{
			"token0_reserve":   token0Reserve,
			"token1_reserve":   token1Reserve,
			"volume_24h":       volume24h,
			"token1_price_usd": token1PriceUsd,
			"reserves_updated": timestamp,
		}).Error
	})
}

// OpenPosition creates a position from a confirmed add-liquidity event, with
// the entry price fixed at the add moment.
func OpenPosition(db *gorm.DB, walletAddress string, poolID uint, token0Amount, token1Amount, lpTokenAmount decimal.Decimal, txHash string, addedAt time.Time) (*models.UserLiquidityPosition, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}
	if token0Amount.Sign() <= 0 || token1Amount.Sign() <= 0 || lpTokenAmount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	var position *models.UserLiquidityPosition
	err = db.Transaction(func(tx *gorm.DB) error {
		var pool models.LiquidityPool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&pool, poolID).Error; err != nil {
			return err
		}
		if !pool.IsActive {
			return ErrPoolInactive
		}

		entryPrice := pool.CurrentPrice()
		initialValue := token0Amount.Mul(entryPrice).Mul(pool.Token1PriceUsd).
			Add(token1Amount.Mul(pool.Token1PriceUsd))

		position = &models.UserLiquidityPosition{
			WalletAddress:   wallet,
			PoolID:          poolID,
			LpTokenAmount:   lpTokenAmount,
			Token0Amount:    token0Amount,
			Token1Amount:    token1Amount,
			EntryPrice:      entryPrice,
			InitialValueUsd: initialValue,
			CurrentValueUsd: initialValue,
			AddedAt:         addedAt,
			LastValuation:   addedAt,
			IsActive:        true,
		}
		if err := tx.Create(position).Error; err != nil {
			return err
		}

		record := models.LiquidityTransaction{
			PositionID:    position.ID,
			PoolID:        poolID,
			WalletAddress: wallet,
			TxType:        models.LiquidityTxAdd,
			Token0Amount:  token0Amount,
			Token1Amount:  token1Amount,
			LpTokenAmount: lpTokenAmount,
			AmountUsd:     initialValue,
			TxHash:        txHash,
			ExecutedAt:    addedAt,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return position, nil
}

// ClosePosition settles a position on a confirmed remove-liquidity event.
// The position is revalued one final time at the close, then deactivated.
func ClosePosition(db *gorm.DB, positionID uint, txHash string, removedAt time.Time) (*models.UserLiquidityPosition, error) {
	var position models.UserLiquidityPosition
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&position, positionID).Error; err != nil {
			return err
		}
		if !position.IsActive {
			return ErrPositionInactive
		}

		var pool models.LiquidityPool
		if err := tx.First(&pool, position.PoolID).Error; err != nil {
			return err
		}

		if err := Revalue(tx, &position, &pool, removedAt); err != nil {
			return err
		}

		record := models.LiquidityTransaction{
			PositionID:    position.ID,
			PoolID:        position.PoolID,
			WalletAddress: position.WalletAddress,
			TxType:        models.LiquidityTxRemove,
			Token0Amount:  position.Token0Amount,
			Token1Amount:  position.Token1Amount,
			LpTokenAmount: position.LpTokenAmount,
			AmountUsd:     position.CurrentValueUsd,
			TxHash:        txHash,
			ExecutedAt:    removedAt,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		position.IsActive = false
		position.RemovedAt = &removedAt
		return tx.Model(&position).Updates(map[string]interface{}{
			"is_active":  false,
			"removed_at": removedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// RecordFeeClaim appends a CLAIM_FEES transaction and refreshes the
// position's running fee total.
func RecordFeeClaim(db *gorm.DB, positionID uint, amountUsd decimal.Decimal, txHash string, claimedAt time.Time) error {
	if amountUsd.IsNegative() {
		return ErrNegativeResultRejected
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var position models.UserLiquidityPosition
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&position, positionID).Error; err != nil {
			return err
		}

		record := models.LiquidityTransaction{
			PositionID:    position.ID,
			PoolID:        position.PoolID,
			WalletAddress: position.WalletAddress,
			TxType:        models.LiquidityTxClaimFees,
			AmountUsd:     amountUsd,
			TxHash:        txHash,
			ExecutedAt:    claimedAt,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		fees, err := FeesEarnedUsd(tx, position.ID)
		if err != nil {
			return err
		}
		return tx.Model(&position).Update("fees_earned_usd", fees).Error
	})
}
