package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ClaimStatusPending   = "pending"
	ClaimStatusConfirmed = "confirmed"
	ClaimStatusFailed    = "failed"
)

// StakingRewardClaim is the append-only ledger of the user-side half of every
// claim. Rows are never updated after confirmation.
type StakingRewardClaim struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	StakeID       uint            `gorm:"not null;index" json:"stake_id"`
	WalletAddress string          `gorm:"size:42;not null;index" json:"wallet_address"`
	ClaimedAmount decimal.Decimal `gorm:"type:decimal(36,18);not null" json:"claimed_amount"`
	ClaimDate     time.Time       `gorm:"not null;index" json:"claim_date"`
	TxHash        string          `gorm:"size:66" json:"tx_hash"`
	Status        string          `gorm:"size:20;not null" json:"status"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// SchoolRewardDistribution is the school-side half of a claim, linked to the
// beneficiary selection that was active at claim time.
type SchoolRewardDistribution struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	ClaimID       uint               `gorm:"not null;index" json:"claim_id"`
	StakeID       uint               `gorm:"not null;index" json:"stake_id"`
	SchoolID      uint               `gorm:"not null;index" json:"school_id"`
	SelectionID   uint               `gorm:"not null" json:"selection_id"`
	WalletAddress string             `gorm:"size:42;not null;index" json:"wallet_address"`
	Amount        decimal.Decimal    `gorm:"type:decimal(36,18);not null" json:"amount"`
	DistributedAt time.Time          `gorm:"not null" json:"distributed_at"`
	CreatedAt     time.Time          `json:"created_at" gorm:"autoCreateTime"`
	School        *SchoolBeneficiary `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (StakingRewardClaim) TableName() string {
	return "staking_reward_claims"
}

func (SchoolRewardDistribution) TableName() string {
	return "school_reward_distributions"
}
