package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StakingPool struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	MinStake       decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"min_stake"`
	MaxStake       decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"max_stake"`
	LockPeriodDays int             `gorm:"not null" json:"lock_period_days"`
	BaseAPY        decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"base_apy"`
	BonusAPY       decimal.Decimal `gorm:"type:decimal(10,4)" json:"bonus_apy"`
	TotalStaked    decimal.Decimal `gorm:"type:decimal(36,18);default:0" json:"total_staked"`
	MaxPoolSize    decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"max_pool_size"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (StakingPool) TableName() string {
	return "staking_pools"
}
