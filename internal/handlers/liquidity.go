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

// LiquidityPoolRequest represents the request body for creating/updating a liquidity pool
type LiquidityPoolRequest struct {
	DexName       string           `json:"dex_name" binding:"required"`
	PairAddress   string           `json:"pair_address" binding:"required"`
	Token0Symbol  string           `json:"token0_symbol" binding:"required"`
	Token1Symbol  string           `json:"token1_symbol" binding:"required"`
	FeePercentage *decimal.Decimal `json:"fee_percentage"`
	IsActive      *bool            `json:"is_active"`
}

// ReserveUpdateRequest carries one DEX feed tick pushed over HTTP
type ReserveUpdateRequest struct {
	Token0Reserve  decimal.Decimal `json:"token0_reserve" binding:"required"`
	Token1Reserve  decimal.Decimal `json:"token1_reserve" binding:"required"`
	Volume24h      decimal.Decimal `json:"volume_24h"`
	Token1PriceUsd decimal.Decimal `json:"token1_price_usd"`
	Timestamp      time.Time       `json:"timestamp" binding:"required"`
}

// AddLiquidityPreviewRequest represents the add-liquidity preview body
type AddLiquidityPreviewRequest struct {
	WalletAddress string          `json:"wallet_address" binding:"required"`
	PoolID        uint            `json:"pool_id" binding:"required"`
	Token0Amount  decimal.Decimal `json:"token0_amount" binding:"required"`
	Token1Amount  decimal.Decimal `json:"token1_amount" binding:"required"`
	SlippagePct   decimal.Decimal `json:"slippage_pct"`
}

// RemoveLiquidityPreviewRequest represents the remove-liquidity preview body
type RemoveLiquidityPreviewRequest struct {
	WalletAddress string          `json:"wallet_address" binding:"required"`
	PositionID    uint            `json:"position_id" binding:"required"`
	Percentage    decimal.Decimal `json:"percentage" binding:"required"`
}

// ListLiquidityPools returns all liquidity pools with derived price and APY estimate
func ListLiquidityPools(c *gin.Context) {
	var pools []models.LiquidityPool
	if err := dbconfig.DB.Find(&pools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type poolView struct {
		models.LiquidityPool
		CurrentPrice decimal.Decimal `json:"current_price"`
		EstimatedAPY decimal.Decimal `json:"estimated_apy"`
	}
	views := make([]poolView, 0, len(pools))
	for i := range pools {
		views = append(views, poolView{
			LiquidityPool: pools[i],
			CurrentPrice:  pools[i].CurrentPrice(),
			EstimatedAPY:  business.PoolAPYEstimate(&pools[i]),
		})
	}
	c.JSON(http.StatusOK, views)
}

// CreateLiquidityPool registers a new pool
func CreateLiquidityPool(c *gin.Context) {
	var request LiquidityPoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool := models.LiquidityPool{
		DexName:      request.DexName,
		PairAddress:  request.PairAddress,
		Token0Symbol: request.Token0Symbol,
		Token1Symbol: request.Token1Symbol,
		IsActive:     true,
	}
	if request.FeePercentage != nil {
		pool.FeePercentage = *request.FeePercentage
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

// GetLiquidityPool returns one pool with derived price and APY estimate
func GetLiquidityPool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pool models.LiquidityPool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Liquidity pool not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"pool":          pool,
		"current_price": pool.CurrentPrice(),
		"estimated_apy": business.PoolAPYEstimate(&pool),
	})
}

// UpdateLiquidityPool updates pool metadata. Reserves only move through the
// feed tick path.
func UpdateLiquidityPool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pool models.LiquidityPool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Liquidity pool not found"})
		return
	}

	var request LiquidityPoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool.DexName = request.DexName
	pool.PairAddress = request.PairAddress
	pool.Token0Symbol = request.Token0Symbol
	pool.Token1Symbol = request.Token1Symbol
	if request.FeePercentage != nil {
		pool.FeePercentage = *request.FeePercentage
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

// UpdatePoolReserves applies a feed tick to a pool. Out-of-order ticks are
// dropped by timestamp, not by arrival order.
func UpdatePoolReserves(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request ReserveUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = business.UpdatePoolReserves(dbconfig.DB, uint(id),
		request.Token0Reserve, request.Token1Reserve,
		request.Volume24h, request.Token1PriceUsd, request.Timestamp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reserves updated"})
}

// ListUserPositions returns a wallet's liquidity positions, revalued at
// read time when the pool reserves are fresh enough
func ListUserPositions(c *gin.Context) {
	wallet, err := business.NormalizeWallet(c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}

	var positions []models.UserLiquidityPosition
	if err := dbconfig.DB.Preload("Pool").
		Where("wallet_address = ?", wallet).
		Order("added_at DESC").
		Find(&positions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	for i := range positions {
		if !positions[i].IsActive || positions[i].Pool == nil {
			continue
		}
		// Stale reserves degrade to the last persisted valuation.
		if err := business.Revalue(dbconfig.DB, &positions[i], positions[i].Pool, now); err != nil && err != business.ErrStaleInput {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, positions)
}

// RevaluePosition forces a revaluation of one position
func RevaluePosition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var position models.UserLiquidityPosition
	if err := dbconfig.DB.First(&position, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	var pool models.LiquidityPool
	if err := dbconfig.DB.First(&pool, position.PoolID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	if err := business.Revalue(dbconfig.DB, &position, &pool, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, position)
}

// GetPositionTransactions returns the ADD/REMOVE/CLAIM_FEES history of a position
func GetPositionTransactions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var txs []models.LiquidityTransaction
	if err := dbconfig.DB.Where("position_id = ?", id).
		Order("executed_at ASC").
		Find(&txs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, txs)
}

// CalculateAddLiquidityPreview previews LP tokens minted for a deposit
func CalculateAddLiquidityPreview(c *gin.Context) {
	var request AddLiquidityPreviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := business.CalculateAddLiquidityPreview(dbconfig.DB,
		request.WalletAddress, request.PoolID,
		request.Token0Amount, request.Token1Amount, request.SlippagePct)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// CalculateRemoveLiquidityPreview previews a withdrawal
func CalculateRemoveLiquidityPreview(c *gin.Context) {
	var request RemoveLiquidityPreviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	preview, err := business.CalculateRemoveLiquidityPreview(dbconfig.DB,
		request.WalletAddress, request.PositionID, request.Percentage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}
