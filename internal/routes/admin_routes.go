package routes

import (
	"autofine/internal/controllers"
	"autofine/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/dashboard", controllers.AdminDashboard)
		admin.GET("/analytics", controllers.AnalyticsDashboard)
		admin.GET("/vehicles", controllers.ListVehicles)
		admin.GET("/owners", controllers.ListOwners)
		admin.GET("/challans", controllers.ListChallans)
		admin.POST("/challan/generate", controllers.GenerateChallan)
		admin.POST("/detections", controllers.SubmitDetection)
		admin.POST("/detections/scan", controllers.ScanEvidence)
		admin.GET("/appeals", controllers.ListPendingAppeals)
		admin.POST("/appeals/:id/review", controllers.ReviewAppeal)
		admin.POST("/challan/:id/deduct-points", controllers.DeductPoints)
		admin.GET("/reports", controllers.ListReports)
		admin.POST("/notices", controllers.CreateNotice)
	}
}
