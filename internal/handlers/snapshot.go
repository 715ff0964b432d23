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

// snapshotSeries maps the series name in the URL to a model slice factory.
// Reads order by snapshot_time, never by insertion order.
func snapshotModel(series string) interface{} {
	switch series {
	case "analytics":
		return &[]models.AnalyticsSnapshot{}
	case "treasury":
		return &[]models.TreasurySnapshot{}
	case "burn":
		return &[]models.BurnSnapshot{}
	case "supply":
		return &[]models.SupplySnapshot{}
	default:
		return nil
	}
}

// GetLatestSnapshot returns the newest snapshot of a series
func GetLatestSnapshot(c *gin.Context) {
	dest := snapshotModel(c.Param("series"))
	if dest == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown snapshot series"})
		return
	}

	if err := dbconfig.DB.Order("snapshot_time DESC").Limit(1).Find(dest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dest)
}

// GetSnapshotHistory returns a series newest-first, paginated by limit
func GetSnapshotHistory(c *gin.Context) {
	dest := snapshotModel(c.Param("series"))
	if dest == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown snapshot series"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 1000 {
		limit = 100
	}

	if err := dbconfig.DB.Order("snapshot_time DESC").Limit(limit).Find(dest).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dest)
}

// RecordTreasurySnapshotRequest represents a request to record a treasury snapshot
type RecordTreasurySnapshotRequest struct {
	BalanceTokens decimal.Decimal `json:"balance_tokens" binding:"required"`
	TokenPriceUsd decimal.Decimal `json:"token_price_usd"`
	InflowTokens  decimal.Decimal `json:"inflow_tokens"`
	OutflowTokens decimal.Decimal `json:"outflow_tokens"`
}

// RecordTreasurySnapshot records a treasury balance snapshot
func RecordTreasurySnapshot(c *gin.Context) {
	var req RecordTreasurySnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := business.RecordTreasurySnapshot(
		dbconfig.DB,
		req.BalanceTokens,
		req.TokenPriceUsd,
		req.InflowTokens,
		req.OutflowTokens,
		time.Now().UTC(),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// RecordBurnSnapshotRequest represents a request to record a burn event
type RecordBurnSnapshotRequest struct {
	BurnedTokens decimal.Decimal `json:"burned_tokens" binding:"required"`
}

// RecordBurnSnapshot records a burn event snapshot
func RecordBurnSnapshot(c *gin.Context) {
	var req RecordBurnSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := business.RecordBurnSnapshot(dbconfig.DB, req.BurnedTokens, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot)
}

// GetPoolSnapshotHistory returns the per-pool snapshot series
func GetPoolSnapshotHistory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 || limit > 1000 {
		limit = 100
	}

	var snapshots []models.LiquidityPoolSnapshot
	if err := dbconfig.DB.Where("pool_id = ?", id).
		Order("snapshot_time DESC").Limit(limit).
		Find(&snapshots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
