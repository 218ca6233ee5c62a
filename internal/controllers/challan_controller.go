package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"autofine/internal/audit"
	"autofine/internal/config"
	"autofine/internal/models"
	"autofine/internal/notify"
	"autofine/internal/services"
)

var challanAuditLog = audit.NewChallanLog("./data/challan_generation.csv")

func challanService() *services.ChallanService {
	return &services.ChallanService{
		DB:       config.DB,
		Notifier: notify.SMSLogger{},
		Audit:    challanAuditLog,
	}
}

type generateChallanInput struct {
	LicenseNumber string  `json:"license_number" binding:"required"`
	OwnerName     string  `json:"owner_name"`
	VehicleType   string  `json:"vehicle_type"`
	ChallanType   string  `json:"challan_type" binding:"required"`
	Location      string  `json:"location"`
	CameraID      *uint   `json:"camera_id"`
	EvidenceRef   string  `json:"evidence_ref"`
	Amount        float64 `json:"amount"` // admin override; 0 = computed
}

// GenerateChallan issues a challan from manual admin entry. A positive
// amount overrides the computed fine (administrative override).
func GenerateChallan(c *gin.Context) {
	var input generateChallanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID := uint(c.MustGet("user_id").(float64))
	result, err := challanService().Create(services.CreateChallanInput{
		LicenseNumber: input.LicenseNumber,
		OwnerName:     input.OwnerName,
		VehicleType:   input.VehicleType,
		ViolationType: input.ChallanType,
		Location:      input.Location,
		CameraID:      input.CameraID,
		EvidenceRef:   input.EvidenceRef,
		ManualAmount:  input.Amount,
		RequestedBy:   adminID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ChallanHub.Publish(feedEvent("created", result.Challan))
	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"challan_id":     result.Challan.ID,
		"uin":            result.Challan.UIN,
		"license_number": result.Challan.Vehicle.LicenseNumber,
		"fine_amount":    result.Challan.FineAmount,
		"status":         result.Challan.Status,
		"is_subsequent":  result.Challan.IsSubsequent,
		"notified":       result.Notification.Delivered,
	})
}

// SubmitDetection accepts a detection-collaborator result (ANPR or
// manual camera review) and feeds it into challan creation. Evidence
// content is not validated here.
func SubmitDetection(c *gin.Context) {
	var input struct {
		LicensePlate  string  `json:"license_plate" binding:"required"`
		ViolationType string  `json:"violation_type" binding:"required"`
		Confidence    float64 `json:"confidence"`
		EvidenceRef   string  `json:"evidence_ref"`
		Location      string  `json:"location"`
		CameraID      *uint   `json:"camera_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID := uint(c.MustGet("user_id").(float64))
	result, err := challanService().Create(services.CreateChallanInput{
		LicenseNumber: input.LicensePlate,
		ViolationType: input.ViolationType,
		Location:      input.Location,
		CameraID:      input.CameraID,
		EvidenceRef:   input.EvidenceRef,
		RequestedBy:   adminID,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ChallanHub.Publish(feedEvent("created", result.Challan))
	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"challan_id":  result.Challan.ID,
		"uin":         result.Challan.UIN,
		"status":      result.Challan.Status,
		"fine_amount": result.Challan.FineAmount,
		"confidence":  input.Confidence,
	})
}

// GetChallan fetches one challan with its vehicle.
func GetChallan(c *gin.Context) {
	id := c.Param("id")
	var challan models.Challan
	if err := config.DB.Preload("Vehicle").First(&challan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"challan": challan,
		"overdue": challan.IsOverdue(time.Now()),
	})
}

// PayChallan settles a challan online. Court and drunk-driving
// challans are rejected; re-paying a paid challan is a no-op success.
func PayChallan(c *gin.Context) {
	id := c.Param("id")
	challanID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challan ID format"})
		return
	}

	var input struct {
		PaymentRef string `json:"payment_ref"`
	}
	// body is optional; a missing ref gets generated
	_ = c.ShouldBindJSON(&input)
	if input.PaymentRef == "" {
		input.PaymentRef = fmt.Sprintf("UKPAY-%d", time.Now().Unix())
	}

	result, err := challanService().Pay(uint(challanID), input.PaymentRef)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	ChallanHub.Publish(feedEvent("paid", result.Challan))
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"challan_id":  result.Challan.ID,
		"status":      result.Challan.Status,
		"payment_ref": result.Challan.PaymentRef,
		"notified":    result.Notification.Delivered,
	})
}

// ListChallans is for administrative use; supports status and
// violation-type filters.
func ListChallans(c *gin.Context) {
	query := config.DB.Preload("Vehicle").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if vtype := c.Query("violation_type"); vtype != "" {
		query = query.Where("violation_type = ?", vtype)
	}

	var challans []models.Challan
	if err := query.Find(&challans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing challans: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": challans})
}

// PublicLookup resolves challans by UIN or plate without auth, for the
// public portal.
func PublicLookup(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	upper := strings.ToUpper(q)

	var challans []models.Challan
	if err := config.DB.Preload("Vehicle").
		Joins("JOIN vehicles ON vehicles.id = challans.vehicle_id").
		Where("challans.uin = ? OR vehicles.license_number = ?", upper, upper).
		Order("challans.created_at DESC").
		Find(&challans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed: " + err.Error()})
		return
	}

	today := time.Now()
	out := make([]gin.H, 0, len(challans))
	for _, ch := range challans {
		out = append(out, gin.H{
			"uin":            ch.UIN,
			"license_number": ch.Vehicle.LicenseNumber,
			"violation_type": ch.ViolationType,
			"fine_amount":    ch.FineAmount,
			"status":         ch.Status,
			"due_date":       ch.DueDate,
			"overdue":        ch.IsOverdue(today),
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}
