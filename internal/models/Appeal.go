package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AppealStatus is the closed set of review states for an appeal.
type AppealStatus string

const (
	AppealPending  AppealStatus = "Pending"
	AppealApproved AppealStatus = "Approved"
	AppealRejected AppealStatus = "Rejected"
)

// Appeal is an owner's challenge against a challan. The active appeal
// drives the challan's Disputed status; the challan outlives a
// rejected appeal.
type Appeal struct {
	gorm.Model
	ChallanID     uint         `json:"challan_id" gorm:"index"`
	Challan       Challan      `gorm:"foreignKey:ChallanID" json:"challan,omitempty"`
	UserID        uint         `json:"user_id" gorm:"index"`
	Reason        string       `json:"reason"`
	Status        AppealStatus `json:"status" gorm:"size:20;default:Pending"`
	ReviewedAt    *time.Time   `json:"reviewed_at"`
	ReviewerNotes string       `json:"reviewer_notes"`
}

// Review records the admin decision. Only pending appeals may be
// reviewed, and the decision must be Approved or Rejected.
func (a *Appeal) Review(decision AppealStatus, notes string, now time.Time) error {
	if a.Status != AppealPending {
		return fmt.Errorf("%w: appeal already %s", ErrInvalidTransition, a.Status)
	}
	if decision != AppealApproved && decision != AppealRejected {
		return NewValidationError("status", "must be Approved or Rejected")
	}
	a.Status = decision
	a.ReviewedAt = &now
	a.ReviewerNotes = notes
	return nil
}
