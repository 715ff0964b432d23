package business

import (
	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddLiquidityPreview shows what a deposit would mint before the transaction
// is signed. Amounts are balanced to the live reserve ratio; the surplus side
// is returned so the caller can surface it.
type AddLiquidityPreview struct {
	PoolID            uint            `json:"pool_id"`
	Token0Amount      decimal.Decimal `json:"token0_amount"`
	Token1Amount      decimal.Decimal `json:"token1_amount"`
	Token0Surplus     decimal.Decimal `json:"token0_surplus"`
	Token1Surplus     decimal.Decimal `json:"token1_surplus"`
	LpTokensMinted    decimal.Decimal `json:"lp_tokens_minted"`
	MinLpTokensMinted decimal.Decimal `json:"min_lp_tokens_minted"`
	PoolSharePct      decimal.Decimal `json:"pool_share_pct"`
	ValueUsd          decimal.Decimal `json:"value_usd"`
	EstimatedAPY      decimal.Decimal `json:"estimated_apy"`
}

// RemoveLiquidityPreview shows what withdrawing a percentage of a position
// would return at current reserves.
type RemoveLiquidityPreview struct {
	PositionID     uint            `json:"position_id"`
	Percentage     decimal.Decimal `json:"percentage"`
	Token0Amount   decimal.Decimal `json:"token0_amount"`
	Token1Amount   decimal.Decimal `json:"token1_amount"`
	LpTokensBurned decimal.Decimal `json:"lp_tokens_burned"`
	ValueUsd       decimal.Decimal `json:"value_usd"`
	FeesEarnedUsd  decimal.Decimal `json:"fees_earned_usd"`
}

// CalculateAddLiquidityPreview balances the requested amounts against the
// pool ratio and estimates minted LP tokens with the requested slippage
// tolerance (percent).
func CalculateAddLiquidityPreview(db *gorm.DB, walletAddress string, poolID uint, amount0, amount1, slippagePct decimal.Decimal) (*AddLiquidityPreview, error) {
	if _, err := NormalizeWallet(walletAddress); err != nil {
		return nil, err
	}
	if amount0.Sign() <= 0 || amount1.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if slippagePct.IsNegative() || slippagePct.GreaterThanOrEqual(oneHundred) {
		return nil, ErrInvalidAmount
	}

	var pool models.LiquidityPool
	if err := db.First(&pool, poolID).Error; err != nil {
		return nil, err
	}
	if !pool.IsActive {
		return nil, ErrPoolInactive
	}
	if pool.Token0Reserve.IsZero() || pool.Token1Reserve.IsZero() || pool.LpTokenSupply.IsZero() {
		return nil, ErrStaleInput
	}

	// Balance to the reserve ratio; the limiting side drives the deposit.
	used0 := amount0
	used1 := amount1
	required1 := amount0.Mul(pool.CurrentPrice())
	if required1.GreaterThan(amount1) {
		used0 = amount1.DivRound(pool.CurrentPrice(), 18)
	} else {
		used1 = required1
	}

	minted := used0.DivRound(pool.Token0Reserve, 18).Mul(pool.LpTokenSupply)
	minMinted := minted.Mul(oneHundred.Sub(slippagePct)).DivRound(oneHundred, 18)
	sharePct := minted.DivRound(pool.LpTokenSupply.Add(minted), 18).Mul(oneHundred)

	valueUsd := used0.Mul(pool.CurrentPrice()).Mul(pool.Token1PriceUsd).
		Add(used1.Mul(pool.Token1PriceUsd))

	return &AddLiquidityPreview{
		PoolID:            poolID,
		Token0Amount:      used0,
		Token1Amount:      used1,
		Token0Surplus:     amount0.Sub(used0),
		Token1Surplus:     amount1.Sub(used1),
		LpTokensMinted:    minted,
		MinLpTokensMinted: minMinted,
		PoolSharePct:      sharePct,
		ValueUsd:          valueUsd,
		EstimatedAPY:      PoolAPYEstimate(&pool),
	}, nil
}

// CalculateRemoveLiquidityPreview values a partial or full withdrawal of a
// position's LP share at the live reserves.
func CalculateRemoveLiquidityPreview(db *gorm.DB, walletAddress string, positionID uint, percentage decimal.Decimal) (*RemoveLiquidityPreview, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}
	if percentage.Sign() <= 0 || percentage.GreaterThan(oneHundred) {
		return nil, ErrInvalidAmount
	}

	var position models.UserLiquidityPosition
	if err := db.Where("id = ? AND wallet_address = ?", positionID, wallet).
		First(&position).Error; err != nil {
		return nil, err
	}
	if !position.IsActive {
		return nil, ErrPositionInactive
	}

	var pool models.LiquidityPool
	if err := db.First(&pool, position.PoolID).Error; err != nil {
		return nil, err
	}
	if pool.LpTokenSupply.IsZero() {
		return nil, ErrStaleInput
	}

	fraction := percentage.DivRound(oneHundred, 18)
	burned := position.LpTokenAmount.Mul(fraction)
	share := burned.DivRound(pool.LpTokenSupply, 18)
	out0 := pool.Token0Reserve.Mul(share)
	out1 := pool.Token1Reserve.Mul(share)
	valueUsd := out0.Mul(pool.CurrentPrice()).Mul(pool.Token1PriceUsd).
		Add(out1.Mul(pool.Token1PriceUsd))

	fees, err := FeesEarnedUsd(db, position.ID)
	if err != nil {
		return nil, err
	}

	return &RemoveLiquidityPreview{
		PositionID:     positionID,
		Percentage:     percentage,
		Token0Amount:   out0,
		Token1Amount:   out1,
		LpTokensBurned: burned,
		ValueUsd:       valueUsd,
		FeesEarnedUsd:  fees,
	}, nil
}
