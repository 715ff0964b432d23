package models

import (
	"time"
)

type SchoolBeneficiary struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name"`
	Country       string    `gorm:"size:100" json:"country"`
	WalletAddress string    `gorm:"size:42;not null;uniqueIndex" json:"wallet_address"`
	Description   string    `gorm:"type:text" json:"description"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserStakingBeneficiary is an append-only selection log: choosing a new
// school deactivates the previous row instead of overwriting it, so the
// distribution history always resolves to the selection that was active at
// the time. At most one row per wallet has IsActive = true (enforced by a
// partial unique index in migrations).
type UserStakingBeneficiary struct {
	ID            uint               `gorm:"primarykey" json:"id"`
	WalletAddress string             `gorm:"size:42;not null;index" json:"wallet_address"`
	SchoolID      uint               `gorm:"not null;index" json:"school_id"`
	IsActive      bool               `gorm:"default:true" json:"is_active"`
	SelectedAt    time.Time          `gorm:"not null" json:"selected_at"`
	DeactivatedAt *time.Time         `json:"deactivated_at"`
	CreatedAt     time.Time          `json:"created_at" gorm:"autoCreateTime"`
	School        *SchoolBeneficiary `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
}

func (SchoolBeneficiary) TableName() string {
	return "school_beneficiaries"
}

func (UserStakingBeneficiary) TableName() string {
	return "user_staking_beneficiaries"
}
