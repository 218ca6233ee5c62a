package main

import (
	"log"
	"net/http"

	"autofine/internal/config"
	"autofine/internal/logger"
	"autofine/internal/middleware"
	"autofine/internal/routes"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and seed reference data
	config.InitDB()
	config.Seed()

	// Setup Gin router
	r := routes.SetupRouter()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Request logging middleware
	r.Use(ginlog.SetLogger())

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚦 AutoFINE server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
