package handlers

import (
	"net/http"
	"strconv"
	"time"

	"teachfi/internal/handlers/business"
	"teachfi/internal/models"
	dbconfig "teachfi/pkg/config"

	"github.com/gin-gonic/gin"
)

// SchoolBeneficiaryRequest represents the request body for creating/updating a school
type SchoolBeneficiaryRequest struct {
	Name          string `json:"name" binding:"required"`
	Country       string `json:"country"`
	WalletAddress string `json:"wallet_address" binding:"required"`
	Description   string `json:"description"`
	IsActive      *bool  `json:"is_active"`
}

// SelectBeneficiaryRequest represents a wallet choosing its school
type SelectBeneficiaryRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	SchoolID      uint   `json:"school_id" binding:"required"`
}

// ListSchools returns all school beneficiaries
func ListSchools(c *gin.Context) {
	var schools []models.SchoolBeneficiary
	if err := dbconfig.DB.Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schools)
}

// GetSchool returns a specific school by ID
func GetSchool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var school models.SchoolBeneficiary
	if err := dbconfig.DB.First(&school, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, school)
}

// CreateSchool registers a new school beneficiary
func CreateSchool(c *gin.Context) {
	var request SchoolBeneficiaryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := business.NormalizeWallet(request.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	school := models.SchoolBeneficiary{
		Name:          request.Name,
		Country:       request.Country,
		WalletAddress: wallet,
		Description:   request.Description,
		IsActive:      true,
	}
	if request.IsActive != nil {
		school.IsActive = *request.IsActive
	}

	if err := dbconfig.DB.Create(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, school)
}

// UpdateSchool updates an existing school beneficiary
func UpdateSchool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request SchoolBeneficiaryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var school models.SchoolBeneficiary
	if err := dbconfig.DB.First(&school, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}

	wallet, err := business.NormalizeWallet(request.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	school.Name = request.Name
	school.Country = request.Country
	school.WalletAddress = wallet
	school.Description = request.Description
	if request.IsActive != nil {
		school.IsActive = *request.IsActive
	}

	if err := dbconfig.DB.Save(&school).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, school)
}

// SelectBeneficiary makes a school the wallet's active beneficiary,
// deactivating the previous selection
func SelectBeneficiary(c *gin.Context) {
	var request SelectBeneficiaryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selection, err := business.SelectBeneficiary(dbconfig.DB, request.WalletAddress, request.SchoolID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, selection)
}

// GetBeneficiaryHistory returns the wallet's full selection log, newest first
func GetBeneficiaryHistory(c *gin.Context) {
	wallet, err := business.NormalizeWallet(c.Param("wallet"))
	if err != nil {
		respondError(c, err)
		return
	}

	var selections []models.UserStakingBeneficiary
	if err := dbconfig.DB.Preload("School").
		Where("wallet_address = ?", wallet).
		Order("selected_at DESC").
		Find(&selections).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, selections)
}

// GetSchoolDistributions returns the distribution ledger for one school
func GetSchoolDistributions(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var distributions []models.SchoolRewardDistribution
	if err := dbconfig.DB.Where("school_id = ?", id).
		Order("distributed_at DESC").
		Find(&distributions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, distributions)
}
