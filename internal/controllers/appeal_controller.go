package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autofine/internal/config"
	"autofine/internal/models"
)

// CreateAppeal lets an owner dispute one of their unpaid challans.
func CreateAppeal(c *gin.Context) {
	var input struct {
		ChallanID uint   `json:"challan_id" binding:"required"`
		Reason    string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID := uint(c.MustGet("user_id").(float64))
	appeal, err := challanService().FileAppeal(input.ChallanID, ownerID, input.Reason)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"appeal_id": appeal.ID,
		"status":    appeal.Status,
		"guidance":  "Your appeal has been submitted. It will be reviewed by authorities.",
	})
}

// ReviewAppeal records the admin decision on a pending appeal.
func ReviewAppeal(c *gin.Context) {
	id := c.Param("id")
	appealID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appeal ID format"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appeal, err := challanService().ReviewAppeal(uint(appealID), models.AppealStatus(input.Status), input.Notes)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"appeal_id":   appeal.ID,
		"status":      appeal.Status,
		"reviewed_at": appeal.ReviewedAt,
	})
}

// ListMyAppeals returns the authenticated owner's appeals.
func ListMyAppeals(c *gin.Context) {
	ownerID := uint(c.MustGet("user_id").(float64))

	var appeals []models.Appeal
	if err := config.DB.Preload("Challan").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&appeals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching appeals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appeals": appeals})
}

// ListPendingAppeals is for administrative use.
func ListPendingAppeals(c *gin.Context) {
	var appeals []models.Appeal
	if err := config.DB.Preload("Challan").Preload("Challan.Vehicle").
		Where("status = ?", models.AppealPending).
		Order("created_at").
		Find(&appeals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching appeals: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": appeals})
}
