package routes

import (
	"teachfi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupLiquidityRoutes sets up liquidity pool and position routes
func SetupLiquidityRoutes(r *gin.Engine) {
	pools := r.Group("/liquidity-pools")
	{
		pools.GET("", handlers.ListLiquidityPools)
		pools.GET("/:id", handlers.GetLiquidityPool)
		pools.POST("", handlers.CreateLiquidityPool)
		pools.PUT("/:id", handlers.UpdateLiquidityPool)
		pools.POST("/:id/reserves", handlers.UpdatePoolReserves)
		pools.GET("/:id/snapshots", handlers.GetPoolSnapshotHistory)
	}

	liquidity := r.Group("/liquidity")
	{
		liquidity.GET("/positions/wallet/:wallet", handlers.ListUserPositions)
		liquidity.POST("/positions/:id/revalue", handlers.RevaluePosition)
		liquidity.GET("/positions/:id/transactions", handlers.GetPositionTransactions)
		liquidity.POST("/preview/add", handlers.CalculateAddLiquidityPreview)
		liquidity.POST("/preview/remove", handlers.CalculateRemoveLiquidityPreview)
	}
}
