package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autofine/internal/models"
)

// PlanService manages installment plans for large fines.
type PlanService struct {
	DB *gorm.DB
}

// CreatePlan opens an installment plan on an unpaid challan whose fine
// meets the minimum threshold. At most one plan per challan.
func (s *PlanService) CreatePlan(challanID, ownerID uint, installmentCount int) (*models.PaymentPlan, error) {
	if installmentCount < 1 {
		return nil, models.NewValidationError("installment_count", "must be at least 1")
	}

	var plan models.PaymentPlan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var challan models.Challan
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&challan, challanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("challan %d: %w", challanID, models.ErrNotFound)
			}
			return fmt.Errorf("loading challan: %w", err)
		}
		if ownerID != 0 {
			var vehicle models.Vehicle
			if err := tx.First(&vehicle, challan.VehicleID).Error; err != nil {
				return fmt.Errorf("loading vehicle: %w", err)
			}
			if vehicle.OwnerID != ownerID {
				return fmt.Errorf("challan %d: %w", challanID, models.ErrNotFound)
			}
		}
		if challan.FineAmount < models.MinPlanFine {
			return fmt.Errorf("%w: payment plans are available only for fines of ₹%d and above",
				models.ErrPolicyViolation, models.MinPlanFine)
		}
		if challan.Status != models.StatusUnpaid {
			return fmt.Errorf("%w: cannot open a plan on a challan in status %q",
				models.ErrInvalidTransition, challan.Status)
		}

		var existing models.PaymentPlan
		if err := tx.Where("challan_id = ?", challanID).First(&existing).Error; err == nil {
			return fmt.Errorf("%w: payment plan already exists for challan %d",
				models.ErrInvalidTransition, challanID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("checking existing plan: %w", err)
		}

		plan = models.PaymentPlan{
			ChallanID:          challanID,
			TotalAmount:        challan.FineAmount,
			RemainingAmount:    challan.FineAmount,
			InstallmentCount:   installmentCount,
			CurrentInstallment: 0,
			NextDueDate:        time.Now().AddDate(0, 0, 30),
			Status:             models.PlanActive,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// PayInstallment records one installment. When the remaining amount
// reaches zero the plan completes and the parent challan flips to Paid
// in the same transaction.
func (s *PlanService) PayInstallment(planID uint) (*models.PaymentPlan, error) {
	var plan models.PaymentPlan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&plan, planID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("plan %d: %w", planID, models.ErrNotFound)
			}
			return fmt.Errorf("loading plan: %w", err)
		}

		now := time.Now()
		completed, err := plan.ApplyInstallment(now)
		if err != nil {
			return err
		}
		if err := tx.Save(&plan).Error; err != nil {
			return fmt.Errorf("saving plan: %w", err)
		}
		if completed {
			var challan models.Challan
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&challan, plan.ChallanID).Error; err != nil {
				return fmt.Errorf("loading challan: %w", err)
			}
			challan.SettleByPlan(now)
			if err := tx.Save(&challan).Error; err != nil {
				return fmt.Errorf("saving challan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}
