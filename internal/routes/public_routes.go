package routes

import (
	"autofine/internal/controllers"

	"github.com/gin-gonic/gin"
)

func PublicRoutes(r *gin.Engine) {
	public := r.Group("/public")
	{
		public.GET("/lookup", controllers.PublicLookup)
		public.GET("/notices", controllers.ListNotices)
		public.POST("/report", controllers.CreateReport)
		public.GET("/license/:dl_number/points", controllers.GetDriverPoints)
	}
}
