package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LiquidityTxAdd       = "ADD"
	LiquidityTxRemove    = "REMOVE"
	LiquidityTxClaimFees = "CLAIM_FEES"
)

type UserLiquidityPosition struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	WalletAddress   string          `gorm:"size:42;not null;index" json:"wallet_address"`
	PoolID          uint            `gorm:"not null;index" json:"pool_id"`
	LpTokenAmount   decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"lp_token_amount"`
	Token0Amount    decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"token0_amount"`
	Token1Amount    decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"token1_amount"`
	EntryPrice      decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"entry_price"`
	InitialValueUsd decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"initial_value_usd"`
	CurrentValueUsd decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"current_value_usd"`
	FeesEarnedUsd   decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"fees_earned_usd"`
	ImpermanentLoss decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"impermanent_loss"`
	NetPnL          decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"net_pnl"`
	AddedAt         time.Time       `gorm:"not null" json:"added_at"`
	RemovedAt       *time.Time      `json:"removed_at"`
	LastValuation   time.Time       `json:"last_valuation"`
	IsActive        bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	Pool            *LiquidityPool  `gorm:"foreignKey:PoolID" json:"pool,omitempty"`
}

// LiquidityTransaction is the append-only ADD/REMOVE/CLAIM_FEES history
// underlying a position. Fees earned are summed from CLAIM_FEES rows, never
// estimated.
type LiquidityTransaction struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	PositionID    uint            `gorm:"not null;index" json:"position_id"`
	PoolID        uint            `gorm:"not null;index" json:"pool_id"`
	WalletAddress string          `gorm:"size:42;not null;index" json:"wallet_address"`
	TxType        string          `gorm:"size:20;not null" json:"tx_type"`
	Token0Amount  decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"token0_amount"`
	Token1Amount  decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"token1_amount"`
	LpTokenAmount decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"lp_token_amount"`
	AmountUsd     decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"amount_usd"`
	TxHash        string          `gorm:"size:66;not null" json:"tx_hash"`
	ExecutedAt    time.Time       `gorm:"not null;index" json:"executed_at"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (UserLiquidityPosition) TableName() string {
	return "user_liquidity_positions"
}

func (LiquidityTransaction) TableName() string {
	return "liquidity_transactions"
}
