package routes

import (
	"teachfi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupVestingRoutes sets up vesting category and milestone routes
func SetupVestingRoutes(r *gin.Engine) {
	vesting := r.Group("/vesting")
	{
		vesting.GET("/categories", handlers.ListVestingCategories)
		vesting.POST("/categories", handlers.CreateVestingCategory)
		vesting.PUT("/categories/:id", handlers.UpdateVestingCategory)
		vesting.GET("/schedule/:id", handlers.GetVestingSchedule)
		vesting.POST("/milestones/:id/execute", handlers.MarkMilestoneExecuted)
	}
}
