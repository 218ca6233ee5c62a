package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"autofine/internal/config"
	"autofine/internal/models"
	"autofine/internal/services"
)

func planService() *services.PlanService {
	return &services.PlanService{DB: config.DB}
}

// CreatePaymentPlan opens an installment plan on a large fine.
func CreatePaymentPlan(c *gin.Context) {
	var input struct {
		ChallanID        uint `json:"challan_id" binding:"required"`
		InstallmentCount int  `json:"installment_count"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.InstallmentCount == 0 {
		input.InstallmentCount = 3
	}

	ownerID := uint(c.MustGet("user_id").(float64))
	if c.GetString("role") == "admin" {
		ownerID = 0 // admins may open plans on any challan
	}

	plan, err := planService().CreatePlan(input.ChallanID, ownerID, input.InstallmentCount)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":            true,
		"plan_id":            plan.ID,
		"installment_amount": plan.InstallmentAmount(),
		"next_due_date":      plan.NextDueDate,
	})
}

// PayInstallment records one installment payment. Completing the plan
// also marks the parent challan paid.
func PayInstallment(c *gin.Context) {
	id := c.Param("id")
	planID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan ID format"})
		return
	}

	plan, err := planService().PayInstallment(uint(planID))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if plan.Status == models.PlanCompleted {
		var challan models.Challan
		if err := config.DB.First(&challan, plan.ChallanID).Error; err == nil {
			ChallanHub.Publish(feedEvent("paid", &challan))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"remaining_amount":    plan.RemainingAmount,
		"current_installment": plan.CurrentInstallment,
		"status":              plan.Status,
	})
}

// GetPaymentPlan fetches one plan with its challan.
func GetPaymentPlan(c *gin.Context) {
	id := c.Param("id")
	var plan models.PaymentPlan
	if err := config.DB.Preload("Challan").First(&plan, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
