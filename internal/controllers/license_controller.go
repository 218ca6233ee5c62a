package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autofine/internal/config"
	"autofine/internal/models"
	"autofine/internal/notify"
	"autofine/internal/services"
)

func licenseService() *services.LicenseService {
	return &services.LicenseService{DB: config.DB, Notifier: notify.SMSLogger{}}
}

// GetDriverPoints returns the point balance for a licence number.
func GetDriverPoints(c *gin.Context) {
	dlNumber := strings.ToUpper(c.Param("dl_number"))

	var license models.DriverLicense
	if err := config.DB.Where("dl_number = ?", dlNumber).First(&license).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "License not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dl_number": license.DLNumber,
		"points":    license.Points,
		"status":    license.Status,
	})
}

// DeductPoints applies the point deduction for a finalized challan to
// the vehicle owner's licence.
func DeductPoints(c *gin.Context) {
	id := c.Param("id")
	challanID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challan ID format"})
		return
	}

	result, err := licenseService().DeductForChallan(uint(challanID))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"dl_number":        result.License.DLNumber,
		"points_deducted":  result.PointsDeducted,
		"remaining_points": result.License.Points,
		"license_status":   result.License.Status,
		"suspended":        result.Suspended,
	})
}
