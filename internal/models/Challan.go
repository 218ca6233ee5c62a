package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ChallanStatus is the closed set of lifecycle states for a challan.
type ChallanStatus string

const (
	StatusUnpaid   ChallanStatus = "Unpaid"
	StatusPaid     ChallanStatus = "Paid"
	StatusCourt    ChallanStatus = "Court"
	StatusDisputed ChallanStatus = "Disputed"
)

// DueAfter is how long an owner has to settle a challan.
const DueAfter = 30 * 24 * time.Hour

// Challan is the central record of a traffic violation. Fine amount and
// the repeat/court flags are frozen at creation; later offenses never
// rewrite earlier challans.
type Challan struct {
	gorm.Model
	UIN           string        `json:"uin" gorm:"uniqueIndex;size:40"`
	VehicleID     uint          `json:"vehicle_id" gorm:"index"`
	Vehicle       Vehicle       `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	ViolationType string        `json:"violation_type" gorm:"size:100"`
	Location      string        `json:"location"`
	FineAmount    float64       `json:"fine_amount"`
	CameraID      *uint         `json:"camera_id"`
	EvidenceRef   string        `json:"evidence_ref"`
	Status        ChallanStatus `json:"status" gorm:"size:20;default:Unpaid"`
	IsSubsequent  bool          `json:"is_subsequent"`
	LicenseAction string        `json:"license_action"` // e.g. "Suspend 3 months"
	DueDate       time.Time     `json:"due_date"`
	PaidAt        *time.Time    `json:"paid_at"`
	PaymentRef    string        `json:"payment_ref" gorm:"size:60"`
	Notes         string        `json:"notes"`
}

// PayableOnline reports whether the challan may ever be settled through
// the portal. Court challans and drunk-driving challans must go before
// a court regardless of their stored status.
func (c *Challan) PayableOnline() bool {
	return c.Status != StatusCourt && c.ViolationType != ViolationDrunkDriving
}

// MarkPaid applies the online-payment transition. Paying an already
// paid challan is a no-op success and leaves PaidAt/PaymentRef intact.
func (c *Challan) MarkPaid(paymentRef string, now time.Time) error {
	if c.Status == StatusPaid {
		return nil
	}
	if !c.PayableOnline() {
		return fmt.Errorf("%w: %s challan must be settled in court", ErrPaymentNotAllowed, c.ViolationType)
	}
	if c.Status != StatusUnpaid {
		return fmt.Errorf("%w: cannot pay a challan in status %q", ErrInvalidTransition, c.Status)
	}
	c.Status = StatusPaid
	c.PaidAt = &now
	c.PaymentRef = paymentRef
	return nil
}

// BeginDispute moves an unpaid challan into the Disputed state when an
// appeal is filed. Court challans are not appealable through the portal.
func (c *Challan) BeginDispute() error {
	if c.Status != StatusUnpaid {
		return fmt.Errorf("%w: cannot appeal a challan in status %q", ErrInvalidTransition, c.Status)
	}
	c.Status = StatusDisputed
	return nil
}

// Waive settles a disputed challan after an approved appeal.
func (c *Challan) Waive(now time.Time) error {
	if c.Status != StatusDisputed {
		return fmt.Errorf("%w: cannot waive a challan in status %q", ErrInvalidTransition, c.Status)
	}
	c.Status = StatusPaid
	c.PaidAt = &now
	c.Notes = "Appeal approved - challan waived"
	return nil
}

// ReopenFromDispute returns a disputed challan to Unpaid after a
// rejected appeal.
func (c *Challan) ReopenFromDispute() error {
	if c.Status != StatusDisputed {
		return fmt.Errorf("%w: cannot reopen a challan in status %q", ErrInvalidTransition, c.Status)
	}
	c.Status = StatusUnpaid
	return nil
}

// SettleByPlan marks the challan paid after its installment plan has
// collected the full amount. This is the only paid transition that does
// not pass through MarkPaid.
func (c *Challan) SettleByPlan(now time.Time) {
	c.Status = StatusPaid
	c.PaidAt = &now
}

// IsOverdue reports whether the challan is still open past its due
// date. Derived on read, never stored.
func (c *Challan) IsOverdue(today time.Time) bool {
	if c.Status == StatusPaid {
		return false
	}
	return c.DueDate.Before(today)
}
