package handlers

import (
	"net/http"
	"strconv"

	"teachfi/internal/models"
	dbconfig "teachfi/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StakingPoolRequest represents the request body for creating/updating a staking pool
type StakingPoolRequest struct {
	Name           string           `json:"name" binding:"required"`
	MinStake       decimal.Decimal  `json:"min_stake" binding:"required"`
	MaxStake       decimal.Decimal  `json:"max_stake" binding:"required"`
	LockPeriodDays int              `json:"lock_period_days" binding:"required"`
	BaseAPY        decimal.Decimal  `json:"base_apy" binding:"required"`
	BonusAPY       *decimal.Decimal `json:"bonus_apy"`
	MaxPoolSize    decimal.Decimal  `json:"max_pool_size" binding:"required"`
	IsActive       *bool            `json:"is_active"`
}

// ListStakingPools returns all staking pools
func ListStakingPools(c *gin.Context) {
	var pools []models.StakingPool
	if err := dbconfig.DB.Find(&pools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pools)
}

// GetStakingPool returns a specific staking pool by ID
func GetStakingPool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pool models.StakingPool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, pool)
}

// CreateStakingPool creates a new staking pool
func CreateStakingPool(c *gin.Context) {
	var request StakingPoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool := models.StakingPool{
		Name:           request.Name,
		MinStake:       request.MinStake,
		MaxStake:       request.MaxStake,
		LockPeriodDays: request.LockPeriodDays,
		BaseAPY:        request.BaseAPY,
		MaxPoolSize:    request.MaxPoolSize,
		TotalStaked:    decimal.Zero,
		IsActive:       true,
	}
	if request.BonusAPY != nil {
		pool.BonusAPY = *request.BonusAPY
	}
	if request.IsActive != nil {
		pool.IsActive = *request.IsActive
	}

	if err := dbconfig.DB.Create(&pool).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pool)
}

// UpdateStakingPool updates pool parameters. TotalStaked is ledger-owned and
// never writable through this endpoint.
func UpdateStakingPool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request StakingPoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pool models.StakingPool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	pool.Name = request.Name
	pool.MinStake = request.MinStake
	pool.MaxStake = request.MaxStake
	pool.LockPeriodDays = request.LockPeriodDays
	pool.BaseAPY = request.BaseAPY
	pool.MaxPoolSize = request.MaxPoolSize
	if request.BonusAPY != nil {
		pool.BonusAPY = *request.BonusAPY
	}
	if request.IsActive != nil {
		pool.IsActive = *request.IsActive
	}

	if err := dbconfig.DB.Save(&pool).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pool)
}
