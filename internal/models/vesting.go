package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type VestingCategory struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	TotalTokens   decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"total_tokens"`
	TgePercentage decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"tge_percentage"`
	VestingMonths int             `gorm:"not null" json:"vesting_months"`
	StartDate     time.Time       `gorm:"not null" json:"start_date"`
	EndDate       time.Time       `gorm:"not null" json:"end_date"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// VestingMilestone rows are generated from the category parameters, never
// user supplied. CumulativeUnlocked is strictly increasing and the final
// milestone's value equals the category's TotalTokens.
type VestingMilestone struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	CategoryID         uint            `gorm:"not null;index" json:"category_id"`
	Sequence           int             `gorm:"not null" json:"sequence"`
	Date               time.Time       `gorm:"not null;index" json:"date"`
	TokensUnlocked     decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"tokens_unlocked"`
	CumulativeUnlocked decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"cumulative_unlocked"`
	PercentageUnlocked decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"percentage_unlocked"`
	IsExecuted         bool            `gorm:"default:false" json:"is_executed"`
	ExecutedTxHash     string          `gorm:"size:66" json:"executed_tx_hash"`
	ExecutedAt         *time.Time      `json:"executed_at"`
	CreatedAt          time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (VestingCategory) TableName() string {
	return "vesting_categories"
}

func (VestingMilestone) TableName() string {
	return "vesting_milestones"
}
