package routes

import (
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Auth routes
	AuthRoutes(r)
	VehicleRoutes(r)
	ChallanRoutes(r)
	AdminRoutes(r)
	PublicRoutes(r)
	FeedRoutes(r)

	return r
}
