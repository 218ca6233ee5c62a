package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autofine/internal/config"
	"autofine/internal/models"
)

// CreateNotice publishes an advisory to the public portal (admin).
func CreateNotice(c *gin.Context) {
	var input models.Notice
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.PublishedAt = time.Now()

	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create notice: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"notice": input})
}

// ListNotices serves the public notice board, optionally filtered by
// state or city.
func ListNotices(c *gin.Context) {
	query := config.DB.Order("published_at DESC")
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ? OR scope = ?", state, "Central")
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ? OR city = ''", city)
	}

	var notices []models.Notice
	if err := query.Limit(50).Find(&notices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch notices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notices})
}

// CreateReport records a citizen incident report.
func CreateReport(c *gin.Context) {
	var input struct {
		ReportType string `json:"report_type" binding:"required"`
		City       string `json:"city"`
		Location   string `json:"location"`
		Details    string `json:"details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.Report{
		ReportType: input.ReportType,
		City:       input.City,
		Location:   input.Location,
		Details:    input.Details,
	}
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(float64); ok {
			report.ReporterUserID = uint(id)
		}
	}

	if err := config.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create report: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"report_id": report.ID})
}

// ListReports is for administrative use.
func ListReports(c *gin.Context) {
	var reports []models.Report
	if err := config.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports})
}
