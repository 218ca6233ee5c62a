package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autofine/internal/detection"
	"autofine/internal/services"
)

// Detector is the pluggable camera-side collaborator. The default is a
// stub; a real ANPR pipeline replaces it at startup.
var Detector detection.Source = detection.StaticSource{}

// ScanEvidence runs the configured detection source over an evidence
// reference and issues a challan from whatever it reports.
func ScanEvidence(c *gin.Context) {
	var input struct {
		EvidenceRef string `json:"evidence_ref" binding:"required"`
		Location    string `json:"location"`
		CameraID    *uint  `json:"camera_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detected, err := Detector.Detect(input.EvidenceRef)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Detection failed: " + err.Error()})
		return
	}

	adminID := uint(c.MustGet("user_id").(float64))
	result, err := challanService().Create(services.CreateChallanInput{
		LicenseNumber: detected.LicensePlate,
		ViolationType: detected.ViolationType,
		Location:      input.Location,
		CameraID:      input.CameraID,
		EvidenceRef:   detected.EvidenceRef,
		RequestedBy:   adminID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ChallanHub.Publish(feedEvent("created", result.Challan))
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"challan_id": result.Challan.ID,
		"uin":        result.Challan.UIN,
		"detected":   detected,
	})
}
