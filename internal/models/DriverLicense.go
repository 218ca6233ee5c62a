package models

import (
	"time"

	"gorm.io/gorm"
)

// LicenseStatus is the closed set of states for a driving licence.
type LicenseStatus string

const (
	LicenseActive    LicenseStatus = "Active"
	LicenseSuspended LicenseStatus = "Suspended"
)

// StartingPoints is the opening balance of a fresh licence.
const StartingPoints = 12

// DriverLicense is the per-user point ledger. Points only ever go
// down; hitting zero suspends the licence until external reinstatement.
type DriverLicense struct {
	gorm.Model
	DLNumber     string        `json:"dl_number" gorm:"uniqueIndex;size:30"`
	UserID       uint          `json:"user_id" gorm:"index"`
	Points       int           `json:"points" gorm:"default:12"`
	Status       LicenseStatus `json:"status" gorm:"size:20;default:Active"`
	IssuedDate   *time.Time    `json:"issued_date"`
	ExpiryDate   *time.Time    `json:"expiry_date"`
	VehicleClass string        `json:"vehicle_class" gorm:"size:50"` // LMV, MCWG, etc.
}

// PointsFor returns the deduction for a violation type.
func PointsFor(violationType string) int {
	if violationType == ViolationDrunkDriving || violationType == ViolationSpeeding {
		return 2
	}
	return 1
}

// Deduct applies the point deduction for a violation, flooring the
// balance at zero. It returns the points deducted and whether this
// deduction tipped the licence into suspension.
func (l *DriverLicense) Deduct(violationType string) (int, bool) {
	deducted := PointsFor(violationType)
	l.Points -= deducted
	if l.Points < 0 {
		l.Points = 0
	}
	if l.Points <= 0 && l.Status == LicenseActive {
		l.Status = LicenseSuspended
		return deducted, true
	}
	return deducted, false
}
