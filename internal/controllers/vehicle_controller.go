package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"autofine/internal/config"
	"autofine/internal/models"
)

// RegisterVehicle allows an owner to register a vehicle against their
// own account.
func RegisterVehicle(c *gin.Context) {
	var input struct {
		LicenseNumber string `json:"license_number" binding:"required"`
		Model         string `json:"model"`
		Color         string `json:"color"`
		VehicleType   string `json:"vehicle_type" binding:"required"`
		State         string `json:"state"`
		City          string `json:"city"`
	}

	// Parse JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	// Get owner ID from token claims
	ownerID := uint(c.MustGet("user_id").(float64))

	vehicle := models.Vehicle{
		LicenseNumber: strings.ToUpper(strings.TrimSpace(input.LicenseNumber)),
		OwnerID:       ownerID,
		VehicleModel:  input.Model,
		Color:         input.Color,
		VehicleType:   input.VehicleType,
		State:         input.State,
		City:          input.City,
	}

	// Save to DB
	if err := config.DB.Create(&vehicle).Error; err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "vehicle with this plate already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func GetMyVehicles(c *gin.Context) {
	ownerID := uint(c.MustGet("user_id").(float64))

	var vehicles []models.Vehicle
	if err := config.DB.Where("owner_id = ?", ownerID).Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching vehicles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListVehicles is for administrative use.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// GetVehicleChallans lists an owner's challans for one vehicle, with
// the overdue flag computed on read.
func GetVehicleChallans(c *gin.Context) {
	ownerID := uint(c.MustGet("user_id").(float64))
	id := c.Param("id")
	vehID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID format"})
		return
	}

	var vehicle models.Vehicle
	query := config.DB.Where("id = ?", uint(vehID))
	if c.GetString("role") != "admin" {
		query = query.Where("owner_id = ?", ownerID)
	}
	if err := query.First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	var challans []models.Challan
	if err := config.DB.Where("vehicle_id = ?", vehicle.ID).
		Order("created_at DESC").Find(&challans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching challans"})
		return
	}

	today := time.Now()
	out := make([]gin.H, 0, len(challans))
	for _, ch := range challans {
		out = append(out, gin.H{
			"challan": ch,
			"overdue": ch.IsOverdue(today),
		})
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle, "challans": out})
}

func DeleteVehicle(c *gin.Context) {
	ownerID := uint(c.MustGet("user_id").(float64))
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := config.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&vehicle).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	// challans go with the vehicle (cascade)
	config.DB.Select("Challans").Delete(&vehicle)
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}
