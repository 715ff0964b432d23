package routes

import (
	"teachfi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStakingPoolRoutes sets up all routes related to staking pool management
func SetupStakingPoolRoutes(r *gin.Engine) {
	pool := r.Group("/staking-pools")
	{
		pool.GET("", handlers.ListStakingPools)
		pool.GET("/:id", handlers.GetStakingPool)
		pool.POST("", handlers.CreateStakingPool)
		pool.PUT("/:id", handlers.UpdateStakingPool)
	}
}

// SetupStakingRoutes sets up the stake lifecycle and read endpoints
func SetupStakingRoutes(r *gin.Engine) {
	staking := r.Group("/staking")
	{
		staking.POST("/stake", handlers.CreateStake)
		staking.POST("/unstake/:id", handlers.UnstakeStake)
		staking.POST("/claim/:id", handlers.ClaimRewards)
		staking.GET("/info/:wallet", handlers.GetUserStakingInfo)
		staking.POST("/preview", handlers.CalculateStakingPreview)
		staking.GET("/projections", handlers.GetRewardProjections)
	}
}
