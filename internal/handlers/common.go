package handlers

import (
	"errors"
	"net/http"

	"teachfi/internal/handlers/business"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps business errors onto HTTP status codes so every handler
// reports the taxonomy consistently.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, business.ErrInvalidAmount),
		errors.Is(err, business.ErrInvalidWalletAddress),
		errors.Is(err, business.ErrPoolInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrPoolCapacityExceeded),
		errors.Is(err, business.ErrLockPeriodActive),
		errors.Is(err, business.ErrNoBeneficiarySelected),
		errors.Is(err, business.ErrAlreadyExecuted),
		errors.Is(err, business.ErrExecutedMilestoneOrphaned),
		errors.Is(err, business.ErrStakeInactive),
		errors.Is(err, business.ErrPositionInactive),
		errors.Is(err, business.ErrTransactionNotConfirmed),
		errors.Is(err, business.ErrNegativeResultRejected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, business.ErrStaleInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
