package routes

import (
	"autofine/internal/controllers"
	"autofine/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ChallanRoutes(r *gin.Engine) {
	challan := r.Group("/challan")
	challan.Use(middleware.RequireAuth())
	{
		challan.GET("/:id", controllers.GetChallan)
		challan.POST("/:id/pay", controllers.PayChallan)
		challan.POST("/appeals", controllers.CreateAppeal)
		challan.GET("/appeals/mine", controllers.ListMyAppeals)
	}

	plans := r.Group("/payment-plans")
	plans.Use(middleware.RequireAuth())
	{
		plans.POST("/", controllers.CreatePaymentPlan)
		plans.GET("/:id", controllers.GetPaymentPlan)
		plans.POST("/:id/pay-installment", controllers.PayInstallment)
	}
}
