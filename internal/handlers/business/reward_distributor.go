package business

import (
	"time"

	"teachfi/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	two  = decimal.NewFromInt(2)
	half = decimal.New(5, -1)
)

// ClaimResult is the outcome of one claim: the full accrued amount and its
// two halves. claimAmount == UserShare + SchoolShare holds exactly for every
// claim; the split carries no rounding residue.
type ClaimResult struct {
	Stake        *models.UserStake                `json:"stake"`
	Claim        *models.StakingRewardClaim       `json:"claim"`
	Distribution *models.SchoolRewardDistribution `json:"distribution"`
	ClaimAmount  decimal.Decimal                  `json:"claim_amount"`
	UserShare    decimal.Decimal                  `json:"user_share"`
	SchoolShare  decimal.Decimal                  `json:"school_share"`
}

// SplitClaim divides a claim 50/50. The user share is truncated at ledger
// precision and the school share is the exact remainder, so any sub-precision
// residue lands on the school side. That tie-break is deliberate: rounding
// never shorts the beneficiary.
func SplitClaim(claimAmount decimal.Decimal) (userShare, schoolShare decimal.Decimal) {
	// Mul by 0.5 is exact; Div would round at its own precision first.
	userShare = claimAmount.Mul(half).Truncate(18)
	schoolShare = claimAmount.Sub(userShare)
	return userShare, schoolShare
}

// activeBeneficiarySelection resolves the wallet's currently active school
// selection. The claim fails rather than discard the school share when no
// selection is active.
func activeBeneficiarySelection(tx *gorm.DB, walletAddress string) (*models.UserStakingBeneficiary, error) {
	var selection models.UserStakingBeneficiary
	err := tx.Where("wallet_address = ? AND is_active = ?", walletAddress, true).
		First(&selection).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNoBeneficiarySelected
	}
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// Claim accrues the stake one final time as of the claim moment, takes the
// full accrued balance, resets it to zero, and records both halves of the
// split in the same transaction. The stake row is locked for the duration,
// so two concurrent claims cannot both read the same accrued balance.
// Claiming on a closed stake is allowed; accrual simply no-ops there.
func Claim(db *gorm.DB, stakeID uint, txHash string, asOf time.Time) (*ClaimResult, error) {
	var result ClaimResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var stake models.UserStake
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stake, stakeID).Error; err != nil {
			return err
		}

		var pool models.StakingPool
		if err := tx.First(&pool, stake.PoolID).Error; err != nil {
			return err
		}

		selection, err := activeBeneficiarySelection(tx, stake.WalletAddress)
		if err != nil {
			return err
		}

		if err := Accrue(tx, &stake, &pool, asOf); err != nil {
			return err
		}

		claimAmount := stake.AccruedRewards
		if claimAmount.IsNegative() {
			return ErrNegativeResultRejected
		}
		userShare, schoolShare := SplitClaim(claimAmount)

		stake.AccruedRewards = decimal.Zero
		stake.ClaimedRewards = stake.ClaimedRewards.Add(userShare)
		if err := tx.Model(&stake).Updates(map[string]interface{}{
			"accrued_rewards": decimal.Zero,
			"claimed_rewards": stake.ClaimedRewards,
		}).Error; err != nil {
			return err
		}

		claim := models.StakingRewardClaim{
			StakeID:       stake.ID,
			WalletAddress: stake.WalletAddress,
			ClaimedAmount: userShare,
			ClaimDate:     asOf,
			TxHash:        txHash,
			Status:        models.ClaimStatusConfirmed,
		}
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}

		distribution := models.SchoolRewardDistribution{
			ClaimID:       claim.ID,
			StakeID:       stake.ID,
			SchoolID:      selection.SchoolID,
			SelectionID:   selection.ID,
			WalletAddress: stake.WalletAddress,
			Amount:        schoolShare,
			DistributedAt: asOf,
		}
		if err := tx.Create(&distribution).Error; err != nil {
			return err
		}

		result = ClaimResult{
			Stake:        &stake,
			Claim:        &claim,
			Distribution: &distribution,
			ClaimAmount:  claimAmount,
			UserShare:    userShare,
			SchoolShare:  schoolShare,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SelectBeneficiary records a new active selection for the wallet and
// deactivates the previous one. Selections are never deleted; the history
// backs the 50/50 distribution audit trail.
func SelectBeneficiary(db *gorm.DB, walletAddress string, schoolID uint, asOf time.Time) (*models.UserStakingBeneficiary, error) {
	wallet, err := NormalizeWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	var selection *models.UserStakingBeneficiary
	err = db.Transaction(func(tx *gorm.DB) error {
		var school models.SchoolBeneficiary
		if err := tx.First(&school, schoolID).Error; err != nil {
			return err
		}
		if !school.IsActive {
			return ErrNoBeneficiarySelected
		}

		if err := tx.Model(&models.UserStakingBeneficiary{}).
			Where("wallet_address = ? AND is_active = ?", wallet, true).
			Updates(map[string]interface{}{
				"is_active":      false,
				"deactivated_at": asOf,
			}).Error; err != nil {
			return err
		}

		selection = &models.UserStakingBeneficiary{
			WalletAddress: wallet,
			SchoolID:      schoolID,
			IsActive:      true,
			SelectedAt:    asOf,
		}
		return tx.Create(selection).Error
	})
	if err != nil {
		return nil, err
	}
	return selection, nil
}
