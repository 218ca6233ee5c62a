package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autofine/internal/config"
	"autofine/internal/models"
)

type violationCount struct {
	ViolationType string `json:"type"`
	Count         int64  `json:"count"`
}

type locationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// AdminDashboard returns headline counts for the admin console.
func AdminDashboard(c *gin.Context) {
	var totalChallans, unpaid, court, disputed, vehicles int64
	config.DB.Model(&models.Challan{}).Count(&totalChallans)
	config.DB.Model(&models.Challan{}).Where("status = ?", models.StatusUnpaid).Count(&unpaid)
	config.DB.Model(&models.Challan{}).Where("status = ?", models.StatusCourt).Count(&court)
	config.DB.Model(&models.Challan{}).Where("status = ?", models.StatusDisputed).Count(&disputed)
	config.DB.Model(&models.Vehicle{}).Count(&vehicles)

	var collected float64
	config.DB.Model(&models.Challan{}).
		Where("status = ?", models.StatusPaid).
		Select("COALESCE(SUM(fine_amount), 0)").
		Scan(&collected)

	c.JSON(http.StatusOK, gin.H{
		"total_challans": totalChallans,
		"unpaid":         unpaid,
		"court":          court,
		"disputed":       disputed,
		"vehicles":       vehicles,
		"collected":      collected,
	})
}

// AnalyticsDashboard aggregates violation mix and location hotspots.
func AnalyticsDashboard(c *gin.Context) {
	var violations []violationCount
	if err := config.DB.Model(&models.Challan{}).
		Select("violation_type, COUNT(id) AS count").
		Group("violation_type").
		Scan(&violations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics query failed: " + err.Error()})
		return
	}

	var hotspots []locationCount
	if err := config.DB.Model(&models.Challan{}).
		Select("location, COUNT(id) AS count").
		Where("location <> ''").
		Group("location").
		Order("count DESC").
		Limit(10).
		Scan(&hotspots).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics query failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"violations": violations,
		"hotspots":   hotspots,
	})
}
