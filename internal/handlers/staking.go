package handlers

import (
	"net/http"
	"strconv"
	"time"

	"teachfi/internal/handlers/business"
	"teachfi/internal/models"
	dbconfig "teachfi/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StakeRequest represents a confirmed stake transaction submitted over HTTP
// (the queue-based intake goes through the worker instead)
type StakeRequest struct {
	WalletAddress string          `json:"wallet_address" binding:"required"`
	PoolID        uint            `json:"pool_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	TxHash        string          `json:"tx_hash" binding:"required"`
}

// StakingPreviewRequest represents the staking preview request body
type StakingPreviewRequest struct {
	WalletAddress string          `json:"wallet_address" binding:"required"`
	PoolID        uint            `json:"pool_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	LockDays      int             `json:"lock_days"`
}

// UserStakingInfo aggregates everything the dashboard needs for one wallet
type UserStakingInfo struct {
	WalletAddress      string                         `json:"wallet_address"`
	Stakes             []StakeWithPending             `json:"stakes"`
	TotalStaked        decimal.Decimal                `json:"total_staked"`
	TotalPendingReward decimal.Decimal                `json:"total_pending_reward"`
	TotalClaimed       decimal.Decimal                `json:"total_claimed"`
	ActiveBeneficiary  *models.UserStakingBeneficiary `json:"active_beneficiary"`
	Claims             []models.StakingRewardClaim    `json:"claims"`
}

// StakeWithPending is a stake row plus its live derived reward, computed
// with the pure accrual function without advancing the stored checkpoint.
type StakeWithPending struct {
	models.UserStake
	PendingReward decimal.Decimal `json:"pending_reward"`
}

// CreateStake opens a stake against a recorded chain confirmation. The tx
// hash must already be known to the intake with status Confirmed; the caller
// cannot vouch for a transaction the chain has not.
func CreateStake(c *gin.Context) {
	var request StakeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := business.NormalizeWallet(request.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	var event models.ChainEvent
	if err := dbconfig.DB.Where("tx_hash = ?", request.TxHash).First(&event).Error; err != nil {
		respondError(c, business.ErrTransactionNotConfirmed)
		return
	}
	if event.Status != models.ChainEventStatusConfirmed {
		respondError(c, business.ErrTransactionNotConfirmed)
		return
	}
	if event.EventType != models.ChainEventStake ||
		event.WalletAddress != wallet ||
		event.PoolID != request.PoolID ||
		!event.Amount.Equal(request.Amount) {
		c.JSON(http.StatusConflict, gin.H{"error": "Request does not match the recorded chain event"})
		return
	}

	// ProcessChainEvent dedupes on the tx hash, so resubmitting a hash the
	// worker already applied changes nothing.
	msg := business.ChainEventMessage{
		WalletAddress:      event.WalletAddress,
		TxHash:             event.TxHash,
		EventType:          event.EventType,
		Amount:             event.Amount,
		PoolID:             event.PoolID,
		Status:             event.Status,
		BlockConfirmations: event.BlockConfirmations,
	}
	if err := business.ProcessChainEvent(dbconfig.DB, &msg); err != nil {
		respondError(c, err)
		return
	}

	var stake models.UserStake
	if err := dbconfig.DB.Where("stake_tx_hash = ?", event.TxHash).First(&stake).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, stake)
}

// UnstakeStake closes a stake once its lock period has elapsed
func UnstakeStake(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	stake, err := business.Unstake(dbconfig.DB, uint(id), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stake)
}

// ClaimRewards claims the full accrued balance of a stake and splits it
// 50/50 with the wallet's active school beneficiary
func ClaimRewards(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	result, err := business.Claim(dbconfig.DB, uint(id), c.Query("tx_hash"), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetUserStakingInfo returns the wallet's stakes with live pending rewards,
// claim history and active beneficiary
func GetUserStakingInfo(c *gin.Context) {
	wallet, err := business.NormalizeWallet(c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}

	var stakes []models.UserStake
	if err := dbconfig.DB.Preload("Pool").
		Where("wallet_address = ?", wallet).
		Order("stake_date DESC").
		Find(&stakes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	eligible, err := business.BonusEligible(dbconfig.DB, wallet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	info := UserStakingInfo{
		WalletAddress:      wallet,
		Stakes:             make([]StakeWithPending, 0, len(stakes)),
		TotalStaked:        decimal.Zero,
		TotalPendingReward: decimal.Zero,
		TotalClaimed:       decimal.Zero,
	}

	for i := range stakes {
		stake := stakes[i]
		pending := stake.AccruedRewards
		if stake.IsActive && stake.Pool != nil {
			pending = pending.Add(business.PendingReward(
				stake.StakedAmount, stake.Pool.BaseAPY, stake.Pool.BonusAPY,
				eligible, stake.LastRewardCalculation, now))
			info.TotalStaked = info.TotalStaked.Add(stake.StakedAmount)
		}
		info.TotalPendingReward = info.TotalPendingReward.Add(pending)
		info.TotalClaimed = info.TotalClaimed.Add(stake.ClaimedRewards)
		info.Stakes = append(info.Stakes, StakeWithPending{UserStake: stake, PendingReward: pending})
	}

	var selection models.UserStakingBeneficiary
	if err := dbconfig.DB.Preload("School").
		Where("wallet_address = ? AND is_active = ?", wallet, true).
		First(&selection).Error; err == nil {
		info.ActiveBeneficiary = &selection
	}

	if err := dbconfig.DB.Where("wallet_address = ?", wallet).
		Order("claim_date DESC").Limit(50).
		Find(&info.Claims).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, info)
}

// CalculateStakingPreview previews rewards for a prospective stake
func CalculateStakingPreview(c *gin.Context) {
	var request StakingPreviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := business.CalculateStakingPreview(dbconfig.DB, request.WalletAddress, request.PoolID, request.Amount, request.LockDays, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// GetRewardProjections returns a day-by-day projected accrual series
func GetRewardProjections(c *gin.Context) {
	poolID, err := strconv.Atoi(c.Query("pool_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pool_id"})
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "365"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid days"})
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	points, err := business.GetRewardProjections(dbconfig.DB, c.Query("wallet"), uint(poolID), amount, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}
