package services

import (
	"errors"
	"fmt"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autofine/internal/models"
	"autofine/internal/notify"
)

// LicenseService maintains the per-driver point ledger.
type LicenseService struct {
	DB       *gorm.DB
	Notifier notify.Notifier
}

// DeductionResult reports one applied point deduction.
type DeductionResult struct {
	License        *models.DriverLicense
	PointsDeducted int
	Suspended      bool
	Notification   notify.Result
}

// DeductForChallan deducts points from the licence of the owner of the
// challan's vehicle. A user without a licence record gets one at the
// default starting balance first, so the first violation already
// reduces from 12.
func (s *LicenseService) DeductForChallan(challanID uint) (DeductionResult, error) {
	var challan models.Challan
	if err := s.DB.First(&challan, challanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeductionResult{}, fmt.Errorf("challan %d: %w", challanID, models.ErrNotFound)
		}
		return DeductionResult{}, fmt.Errorf("loading challan: %w", err)
	}
	var vehicle models.Vehicle
	if err := s.DB.First(&vehicle, challan.VehicleID).Error; err != nil {
		return DeductionResult{}, fmt.Errorf("loading vehicle: %w", err)
	}
	return s.Deduct(vehicle.OwnerID, challan.ViolationType)
}

// Deduct applies the point deduction for one finalized violation.
func (s *LicenseService) Deduct(userID uint, violationType string) (DeductionResult, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeductionResult{}, fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
		}
		return DeductionResult{}, fmt.Errorf("loading user: %w", err)
	}

	var license models.DriverLicense
	var deducted int
	var suspended bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&license).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("loading license: %w", err)
			}
			dl := user.DLNumber
			if dl == "" {
				dl = "DL-" + NewUIN()[4:]
			}
			license = models.DriverLicense{
				DLNumber: dl,
				UserID:   userID,
				Points:   models.StartingPoints,
				Status:   models.LicenseActive,
			}
			if err := tx.Create(&license).Error; err != nil {
				return fmt.Errorf("creating license: %w", err)
			}
		}

		deducted, suspended = license.Deduct(violationType)
		if err := tx.Save(&license).Error; err != nil {
			return fmt.Errorf("saving license: %w", err)
		}
		return nil
	})
	if err != nil {
		return DeductionResult{}, err
	}

	result := DeductionResult{License: &license, PointsDeducted: deducted, Suspended: suspended}
	if suspended && s.Notifier != nil {
		msg := fmt.Sprintf("Your license %s has been suspended due to point deduction.", license.DLNumber)
		result.Notification = s.Notifier.Notify(user.Phone, msg)
		if result.Notification.Err != nil {
			logrus.WithError(result.Notification.Err).WithField("dl_number", license.DLNumber).
				Warn("suspension notification failed")
		}
	}
	return result, nil
}
