package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot rows are immutable once written. Exactly one row per series
// carries IsLatest = true at any instant; the aggregator flips the flag
// inside the same transaction that inserts the new row.

type AnalyticsSnapshot struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	TokenPriceUsd   decimal.Decimal `gorm:"type:decimal(36,18)" json:"token_price_usd"`
	MarketCapUsd    decimal.Decimal `gorm:"type:decimal(36,18)" json:"market_cap_usd"`
	TotalStaked     decimal.Decimal `gorm:"type:decimal(36,18)" json:"total_staked"`
	TotalStakers    int64           `json:"total_stakers"`
	RewardsAccrued  decimal.Decimal `gorm:"type:decimal(36,18)" json:"rewards_accrued"`
	RewardsClaimed  decimal.Decimal `gorm:"type:decimal(36,18)" json:"rewards_claimed"`
	SchoolPaidTotal decimal.Decimal `gorm:"type:decimal(36,18)" json:"school_paid_total"`
	SnapshotTime    time.Time       `gorm:"not null;index" json:"snapshot_time"`
	IsLatest        bool            `gorm:"default:false;index" json:"is_latest"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

type TreasurySnapshot struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	BalanceTokens   decimal.Decimal `gorm:"type:decimal(36,18)" json:"balance_tokens"`
	BalanceUsd      decimal.Decimal `gorm:"type:decimal(36,18)" json:"balance_usd"`
	InflowTokens    decimal.Decimal `gorm:"type:decimal(36,18)" json:"inflow_tokens"`
	OutflowTokens   decimal.Decimal `gorm:"type:decimal(36,18)" json:"outflow_tokens"`
	SnapshotTime    time.Time       `gorm:"not null;index" json:"snapshot_time"`
	IsLatest        bool            `gorm:"default:false;index" json:"is_latest"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

type BurnSnapshot struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	BurnedTokens  decimal.Decimal `gorm:"type:decimal(36,18)" json:"burned_tokens"`
	BurnedTotal   decimal.Decimal `gorm:"type:decimal(36,18)" json:"burned_total"`
	SnapshotTime  time.Time       `gorm:"not null;index" json:"snapshot_time"`
	IsLatest      bool            `gorm:"default:false;index" json:"is_latest"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

type SupplySnapshot struct {
	ID                uint            `gorm:"primarykey" json:"id"`
	TotalSupply       decimal.Decimal `gorm:"type:decimal(36,18)" json:"total_supply"`
	CirculatingSupply decimal.Decimal `gorm:"type:decimal(36,18)" json:"circulating_supply"`
	LockedSupply      decimal.Decimal `gorm:"type:decimal(36,18)" json:"locked_supply"`
	VestedUnlocked    decimal.Decimal `gorm:"type:decimal(36,18)" json:"vested_unlocked"`
	SnapshotTime      time.Time       `gorm:"not null;index" json:"snapshot_time"`
	IsLatest          bool            `gorm:"default:false;index" json:"is_latest"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

type LiquidityPoolSnapshot struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	PoolID           uint            `gorm:"not null;index" json:"pool_id"`
	Token0Reserve    decimal.Decimal `gorm:"type:decimal(36,18)" json:"token0_reserve"`
	Token1Reserve    decimal.Decimal `gorm:"type:decimal(36,18)" json:"token1_reserve"`
	Price            decimal.Decimal `gorm:"type:decimal(36,18)" json:"price"`
	TotalValueLocked decimal.Decimal `gorm:"type:decimal(36,18)" json:"total_value_locked"`
	Volume24h        decimal.Decimal `gorm:"type:decimal(36,18)" json:"volume_24h"`
	SnapshotTime     time.Time       `gorm:"not null;index" json:"snapshot_time"`
	IsLatest         bool            `gorm:"default:false;index" json:"is_latest"`
	CreatedAt        time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (AnalyticsSnapshot) TableName() string {
	return "analytics_snapshots"
}

func (TreasurySnapshot) TableName() string {
	return "treasury_snapshots"
}

func (BurnSnapshot) TableName() string {
	return "burn_snapshots"
}

func (SupplySnapshot) TableName() string {
	return "supply_snapshots"
}

func (LiquidityPoolSnapshot) TableName() string {
	return "liquidity_pool_snapshots"
}
