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
	"gorm.io/gorm"
)

// VestingCategoryRequest represents the request body for creating/updating a vesting category
type VestingCategoryRequest struct {
	Name          string          `json:"name" binding:"required"`
	TotalTokens   decimal.Decimal `json:"total_tokens" binding:"required"`
	TgePercentage decimal.Decimal `json:"tge_percentage"`
	VestingMonths int             `json:"vesting_months"`
	StartDate     time.Time       `json:"start_date" binding:"required"`
	EndDate       time.Time       `json:"end_date" binding:"required"`
}

// MarkMilestoneExecutedRequest carries the on-chain unlock transaction hash
type MarkMilestoneExecutedRequest struct {
	TxHash string `json:"tx_hash" binding:"required"`
}

// ListVestingCategories returns all vesting categories
func ListVestingCategories(c *gin.Context) {
	var categories []models.VestingCategory
	if err := dbconfig.DB.Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateVestingCategory creates a category and generates its milestone schedule
func CreateVestingCategory(c *gin.Context) {
	var request VestingCategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.VestingCategory{
		Name:          request.Name,
		TotalTokens:   request.TotalTokens,
		TgePercentage: request.TgePercentage,
		VestingMonths: request.VestingMonths,
		StartDate:     request.StartDate,
		EndDate:       request.EndDate,
	}

	err := dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		milestones, err := business.GenerateSchedule(&category)
		if err != nil {
			return err
		}
		return tx.Create(&milestones).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateVestingCategory updates category parameters and regenerates the
// schedule, carrying executed milestones over by date
func UpdateVestingCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request VestingCategoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.VestingCategory
	if err := dbconfig.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	category.Name = request.Name
	category.TotalTokens = request.TotalTokens
	category.TgePercentage = request.TgePercentage
	category.VestingMonths = request.VestingMonths
	category.StartDate = request.StartDate
	category.EndDate = request.EndDate

	if err := dbconfig.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	milestones, err := business.RegenerateSchedule(dbconfig.DB, category.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "milestones": milestones})
}

// GetVestingSchedule returns a category with its full milestone schedule
func GetVestingSchedule(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var category models.VestingCategory
	if err := dbconfig.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	var milestones []models.VestingMilestone
	if err := dbconfig.DB.Where("category_id = ?", id).
		Order("sequence ASC").
		Find(&milestones).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "milestones": milestones})
}

// MarkMilestoneExecuted records the unlock transaction for a milestone
func MarkMilestoneExecuted(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request MarkMilestoneExecutedRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	milestone, err := business.MarkExecuted(dbconfig.DB, uint(id), request.TxHash, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}
