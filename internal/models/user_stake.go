package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserStake struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	WalletAddress         string          `gorm:"size:42;not null;index" json:"wallet_address"`
	PoolID                uint            `gorm:"not null;index" json:"pool_id"`
	StakedAmount          decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"staked_amount"`
	AccruedRewards        decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"accrued_rewards"`
	ClaimedRewards        decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"claimed_rewards"`
	StakeDate             time.Time       `gorm:"not null" json:"stake_date"`
	UnstakeDate           *time.Time      `json:"unstake_date"`
	LastRewardCalculation time.Time       `gorm:"not null" json:"last_reward_calculation"`
	StakeTxHash           string          `gorm:"size:66" json:"stake_tx_hash"`
	IsActive              bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt             time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	Pool                  *StakingPool    `gorm:"foreignKey:PoolID" json:"pool,omitempty"`
}

func (UserStake) TableName() string {
	return "user_stakes"
}
