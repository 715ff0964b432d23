package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ChainEventStatusPending   = "Pending"
	ChainEventStatusConfirmed = "Confirmed"
	ChainEventStatusFailed    = "Failed"
)

const (
	ChainEventStake           = "STAKE"
	ChainEventUnstake         = "UNSTAKE"
	ChainEventClaim           = "CLAIM"
	ChainEventLiquidityAdd    = "LIQUIDITY_ADD"
	ChainEventLiquidityRemove = "LIQUIDITY_REMOVE"
	ChainEventClaimFees       = "CLAIM_FEES"
)

// ChainEvent records every confirmation message received from the chain
// intake, append-only. Re-delivered messages are deduplicated on TxHash.
type ChainEvent struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	WalletAddress      string          `gorm:"size:42;not null;index" json:"wallet_address"`
	TxHash             string          `gorm:"size:66;uniqueIndex;not null" json:"tx_hash"`
	EventType          string          `gorm:"size:30;not null" json:"event_type"`
	Amount             decimal.Decimal `gorm:"type:decimal(36,18)" json:"amount"`
	PoolID             uint            `json:"pool_id"`
	ReferenceID        uint            `json:"reference_id"`
	Status             string          `gorm:"size:20;not null;index" json:"status"`
	BlockConfirmations int             `json:"block_confirmations"`
	Processed          bool            `gorm:"default:false;index" json:"processed"`
	ProcessedAt        *time.Time      `json:"processed_at"`
	CreatedAt          time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ChainEvent) TableName() string {
	return "chain_events"
}
