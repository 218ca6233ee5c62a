package routes

import (
	"autofine/internal/controllers"

	"github.com/gin-gonic/gin"
)

func FeedRoutes(r *gin.Engine) {
	// auth happens inside the handler via the token query parameter
	r.GET("/ws/challans", controllers.ChallanFeed)
}
