package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// PlanStatus is the closed set of states for an installment plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "Active"
	PlanCompleted PlanStatus = "Completed"
	PlanDefaulted PlanStatus = "Defaulted"
)

// MinPlanFine is the smallest fine eligible for installments.
const MinPlanFine = 5000

// PaymentPlan splits a challan's fine into equal installments. At most
// one plan exists per challan.
type PaymentPlan struct {
	gorm.Model
	ChallanID          uint       `json:"challan_id" gorm:"uniqueIndex"`
	Challan            Challan    `gorm:"foreignKey:ChallanID" json:"challan,omitempty"`
	TotalAmount        float64    `json:"total_amount"`
	RemainingAmount    float64    `json:"remaining_amount"`
	InstallmentCount   int        `json:"installment_count" gorm:"default:1"`
	CurrentInstallment int        `json:"current_installment" gorm:"default:0"`
	NextDueDate        time.Time  `json:"next_due_date"`
	Status             PlanStatus `json:"status" gorm:"size:20;default:Active"`
}

// InstallmentAmount is the per-payment slice of the total. Real
// division; rounding for display is the caller's concern.
func (p *PaymentPlan) InstallmentAmount() float64 {
	return p.TotalAmount / float64(p.InstallmentCount)
}

// ApplyInstallment records one installment payment. Returns true when
// the plan is complete; completion is "remaining <= 0" so the final
// installment tolerates floating-point residue.
func (p *PaymentPlan) ApplyInstallment(now time.Time) (bool, error) {
	if p.Status != PlanActive {
		return false, fmt.Errorf("%w: payment plan is %s", ErrInvalidTransition, p.Status)
	}
	p.RemainingAmount -= p.InstallmentAmount()
	p.CurrentInstallment++
	if p.RemainingAmount <= 0 {
		p.Status = PlanCompleted
		return true, nil
	}
	p.NextDueDate = now.AddDate(0, 0, 30)
	return false, nil
}
