package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LiquidityPool struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	DexName         string          `gorm:"size:50;not null" json:"dex_name"`
	PairAddress     string          `gorm:"size:42;uniqueIndex;not null" json:"pair_address"`
	Token0Symbol    string          `gorm:"size:20;not null" json:"token0_symbol"`
	Token1Symbol    string          `gorm:"size:20;not null" json:"token1_symbol"`
	Token0Reserve   decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"token0_reserve"`
	Token1Reserve   decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"token1_reserve"`
	LpTokenSupply   decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"lp_token_supply"`
	FeePercentage   decimal.Decimal `gorm:"type:decimal(10,6);default:0" json:"fee_percentage"`
	Volume24h       decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"volume_24h"`
	Token1PriceUsd  decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"token1_price_usd"`
	ReservesUpdated time.Time       `json:"reserves_updated"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// CurrentPrice is the price of token0 in token1 units, derived from the
// live reserve ratio. Zero when the pool holds no token0.
func (p *LiquidityPool) CurrentPrice() decimal.Decimal {
	if p.Token0Reserve.IsZero() {
		return decimal.Zero
	}
	return p.Token1Reserve.DivRound(p.Token0Reserve, 18)
}

// TotalValueLocked values both reserves in USD using the token1 USD price
// and the reserve-ratio price of token0.
func (p *LiquidityPool) TotalValueLocked() decimal.Decimal {
	token0Usd := p.Token0Reserve.Mul(p.CurrentPrice()).Mul(p.Token1PriceUsd)
	token1Usd := p.Token1Reserve.Mul(p.Token1PriceUsd)
	return token0Usd.Add(token1Usd)
}

func (LiquidityPool) TableName() string {
	return "liquidity_pools"
}
