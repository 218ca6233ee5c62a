package routes

import (
	"autofine/internal/controllers"
	"autofine/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VehicleRoutes(r *gin.Engine) {
	vehicle := r.Group("/vehicle")
	vehicle.Use(middleware.RequireAuth())
	{
		vehicle.POST("/", controllers.RegisterVehicle)
		vehicle.GET("/mine", controllers.GetMyVehicles)
		vehicle.GET("/:id/challans", controllers.GetVehicleChallans)
		vehicle.DELETE("/:id", controllers.DeleteVehicle)
	}
}
