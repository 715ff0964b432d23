package routes

import (
	"teachfi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSnapshotRoutes sets up the snapshot read endpoints
func SetupSnapshotRoutes(r *gin.Engine) {
	snapshots := r.Group("/snapshots")
	{
		snapshots.GET("/:series/latest", handlers.GetLatestSnapshot)
		snapshots.GET("/:series", handlers.GetSnapshotHistory)
		snapshots.POST("/treasury", handlers.RecordTreasurySnapshot)
		snapshots.POST("/burn", handlers.RecordBurnSnapshot)
	}
}

// SetupChainRoutes sets up the on-chain event intake endpoint
func SetupChainRoutes(r *gin.Engine) {
	chain := r.Group("/chain")
	{
		chain.POST("/events", handlers.SubmitChainEvent)
	}
}
