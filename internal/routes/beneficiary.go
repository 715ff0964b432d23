package routes

import (
	"teachfi/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupBeneficiaryRoutes sets up school beneficiary and selection routes
func SetupBeneficiaryRoutes(r *gin.Engine) {
	schools := r.Group("/schools")
	{
		schools.GET("", handlers.ListSchools)
		schools.GET("/:id", handlers.GetSchool)
		schools.POST("", handlers.CreateSchool)
		schools.PUT("/:id", handlers.UpdateSchool)
		schools.GET("/:id/distributions", handlers.GetSchoolDistributions)
	}

	beneficiary := r.Group("/beneficiary")
	{
		beneficiary.POST("/select", handlers.SelectBeneficiary)
		beneficiary.GET("/history/:wallet", handlers.GetBeneficiaryHistory)
	}
}
