package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autofine/internal/audit"
	"autofine/internal/fines"
	"autofine/internal/models"
	"autofine/internal/notify"
)

// ChallanService owns the challan lifecycle: creation through the fine
// engine, online payment, and the appeal flow. Every mutation runs in
// one transaction with a row lock so concurrent requests serialize per
// record (the prior-count query and the insert must see a consistent
// history).
type ChallanService struct {
	DB       *gorm.DB
	Notifier notify.Notifier
	Audit    *audit.ChallanLog
}

// ChallanResult pairs the mutated challan with the outcome of the
// best-effort owner notification.
type ChallanResult struct {
	Challan      *models.Challan
	Notification notify.Result
}

// CreateChallanInput is a confirmed violation from a detection source
// or manual admin entry.
type CreateChallanInput struct {
	LicenseNumber string
	OwnerName     string
	VehicleType   string
	ViolationType string
	Location      string
	CameraID      *uint
	EvidenceRef   string
	// ManualAmount is an administratively privileged override of the
	// computed fine. Zero means "let the engine decide".
	ManualAmount float64
	// RequestedBy is the acting admin, used as a last-resort owner for
	// plates that have never been registered.
	RequestedBy uint
}

// NewUIN produces a globally unique challan identifier.
func NewUIN() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "UIN-" + strings.ToUpper(hex[:12])
}

// catalogStore resolves base fines from the seeded violation table.
type catalogStore struct{ db *gorm.DB }

func (s catalogStore) BaseFine(violationType string) (float64, bool) {
	var v models.Violation
	if err := s.db.Where("violation_type = ?", violationType).First(&v).Error; err != nil {
		return 0, false
	}
	return v.FineAmount, true
}

// historyStore counts prior same-type challans for a vehicle.
type historyStore struct{ db *gorm.DB }

func (s historyStore) PriorCount(vehicleID uint, violationType string, before time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Challan{}).
		Where("vehicle_id = ? AND violation_type = ? AND created_at < ?", vehicleID, violationType, before).
		Count(&count).Error
	return count, err
}

// Create runs the fine engine and persists the challan. Unknown plates
// are auto-registered to the first known owner. The vehicle row is
// locked for the duration so two concurrent detections for the same
// vehicle cannot both assess a "first offense".
func (s *ChallanService) Create(input CreateChallanInput) (ChallanResult, error) {
	if input.ViolationType == "" {
		return ChallanResult{}, models.NewValidationError("violation_type", "must not be empty")
	}
	if input.LicenseNumber == "" {
		return ChallanResult{}, models.NewValidationError("license_number", "must not be empty")
	}
	if input.ManualAmount < 0 {
		return ChallanResult{}, models.NewValidationError("amount", "must not be negative")
	}
	plate := strings.ToUpper(strings.TrimSpace(input.LicenseNumber))

	var challan models.Challan
	var vehicle models.Vehicle
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("license_number = ?", plate).
			First(&vehicle).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("looking up vehicle: %w", err)
			}
			registered, regErr := s.registerVehicle(tx, plate, input)
			if regErr != nil {
				return regErr
			}
			vehicle = registered
		}

		now := time.Now()
		engine := fines.NewEngine(catalogStore{tx}, historyStore{tx})
		assessment, err := engine.Assess(input.ViolationType, vehicle.ID, now)
		if err != nil {
			return err
		}

		amount := assessment.Amount
		if input.ManualAmount > 0 {
			amount = input.ManualAmount
		}
		status := models.StatusUnpaid
		if assessment.CourtMandatory {
			status = models.StatusCourt
		}

		challan = models.Challan{
			UIN:           NewUIN(),
			VehicleID:     vehicle.ID,
			ViolationType: input.ViolationType,
			Location:      input.Location,
			FineAmount:    amount,
			CameraID:      input.CameraID,
			EvidenceRef:   input.EvidenceRef,
			Status:        status,
			IsSubsequent:  assessment.IsSubsequent,
			LicenseAction: assessment.LicenseAction,
			DueDate:       now.Add(models.DueAfter),
		}
		if err := tx.Create(&challan).Error; err != nil {
			return fmt.Errorf("creating challan: %w", err)
		}
		return nil
	})
	if err != nil {
		return ChallanResult{}, err
	}

	if s.Audit != nil {
		s.Audit.AppendBestEffort(audit.Entry{
			LicenseNumber: plate,
			OwnerName:     input.OwnerName,
			VehicleType:   vehicle.VehicleType,
			ChallanType:   input.ViolationType,
			Location:      input.Location,
			Amount:        challan.FineAmount,
			ChallanID:     challan.ID,
			UIN:           challan.UIN,
		})
	}

	challan.Vehicle = vehicle
	return ChallanResult{Challan: &challan, Notification: s.notifyCreated(&challan, &vehicle)}, nil
}

func (s *ChallanService) registerVehicle(tx *gorm.DB, plate string, input CreateChallanInput) (models.Vehicle, error) {
	ownerID := input.RequestedBy
	var owner models.User
	if err := tx.Where("role = ?", "owner").Order("id").First(&owner).Error; err == nil {
		ownerID = owner.ID
	}
	if ownerID == 0 {
		return models.Vehicle{}, models.NewValidationError("license_number", "unknown plate and no owner to register it to")
	}

	now := time.Now()
	expiry := now.AddDate(1, 0, 0)
	city := "Dehradun"
	if input.Location != "" {
		city = strings.TrimSpace(strings.Split(input.Location, ",")[0])
	}
	vehicle := models.Vehicle{
		LicenseNumber:    plate,
		OwnerID:          ownerID,
		VehicleModel:     "Unknown",
		VehicleType:      input.VehicleType,
		State:            "Uttarakhand",
		City:             city,
		RegistrationDate: &now,
		InsuranceExpiry:  &expiry,
	}
	if err := tx.Create(&vehicle).Error; err != nil {
		return models.Vehicle{}, fmt.Errorf("registering vehicle %s: %w", plate, err)
	}
	return vehicle, nil
}

func (s *ChallanService) notifyCreated(challan *models.Challan, vehicle *models.Vehicle) notify.Result {
	if s.Notifier == nil {
		return notify.Result{}
	}
	var owner models.User
	if err := s.DB.First(&owner, vehicle.OwnerID).Error; err != nil {
		return notify.Result{Err: err}
	}
	var msg string
	if challan.Status == models.StatusCourt {
		msg = fmt.Sprintf("Court Challan issued. UIN: %s, Vehicle: %s, Violation: %s. Visit court for further process.",
			challan.UIN, vehicle.LicenseNumber, challan.ViolationType)
	} else {
		msg = fmt.Sprintf("Challan issued. UIN: %s, Vehicle: %s, Violation: %s, Fine: ₹%.0f.",
			challan.UIN, vehicle.LicenseNumber, challan.ViolationType, challan.FineAmount)
	}
	res := s.Notifier.Notify(owner.Phone, msg)
	if res.Err != nil {
		logrus.WithError(res.Err).WithField("challan", challan.UIN).Warn("challan notification failed")
	}
	return res
}

// Pay settles an unpaid challan online. Court and drunk-driving
// challans are rejected; paying an already paid challan is a no-op
// success and does not touch PaidAt or PaymentRef.
func (s *ChallanService) Pay(challanID uint, paymentRef string) (ChallanResult, error) {
	var challan models.Challan
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&challan, challanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("challan %d: %w", challanID, models.ErrNotFound)
			}
			return fmt.Errorf("loading challan: %w", err)
		}
		alreadyPaid := challan.Status == models.StatusPaid
		if err := challan.MarkPaid(paymentRef, time.Now()); err != nil {
			return err
		}
		if alreadyPaid {
			return nil
		}
		if err := tx.Save(&challan).Error; err != nil {
			return fmt.Errorf("saving challan: %w", err)
		}
		return nil
	})
	if err != nil {
		return ChallanResult{}, err
	}
	return ChallanResult{Challan: &challan, Notification: s.notifyPaid(&challan)}, nil
}

func (s *ChallanService) notifyPaid(challan *models.Challan) notify.Result {
	if s.Notifier == nil {
		return notify.Result{}
	}
	var vehicle models.Vehicle
	if err := s.DB.First(&vehicle, challan.VehicleID).Error; err != nil {
		return notify.Result{Err: err}
	}
	var owner models.User
	if err := s.DB.First(&owner, vehicle.OwnerID).Error; err != nil {
		return notify.Result{Err: err}
	}
	msg := fmt.Sprintf("Payment received for Challan %s (%s). Amount: ₹%.0f. Ref: %s",
		challan.UIN, challan.ViolationType, challan.FineAmount, challan.PaymentRef)
	res := s.Notifier.Notify(owner.Phone, msg)
	if res.Err != nil {
		logrus.WithError(res.Err).WithField("challan", challan.UIN).Warn("payment notification failed")
	}
	return res
}

// FileAppeal opens a dispute on an unpaid challan. When ownerID is
// non-zero the challan must belong to that owner's vehicle.
func (s *ChallanService) FileAppeal(challanID, ownerID uint, reason string) (*models.Appeal, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, models.NewValidationError("reason", "must not be empty")
	}

	var appeal models.Appeal
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
		if err := challan.BeginDispute(); err != nil {
			return err
		}
		if err := tx.Save(&challan).Error; err != nil {
			return fmt.Errorf("saving challan: %w", err)
		}
		appeal = models.Appeal{
			ChallanID: challan.ID,
			UserID:    ownerID,
			Reason:    reason,
			Status:    models.AppealPending,
		}
		if err := tx.Create(&appeal).Error; err != nil {
			return fmt.Errorf("creating appeal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

// ReviewAppeal records the admin decision. Approval waives the challan
// (status Paid, "waived" note); rejection reopens it as Unpaid.
func (s *ChallanService) ReviewAppeal(appealID uint, decision models.AppealStatus, notes string) (*models.Appeal, error) {
	var appeal models.Appeal
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appeal, appealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("appeal %d: %w", appealID, models.ErrNotFound)
			}
			return fmt.Errorf("loading appeal: %w", err)
		}
		var challan models.Challan
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&challan, appeal.ChallanID).Error; err != nil {
			return fmt.Errorf("loading challan: %w", err)
		}

		now := time.Now()
		if err := appeal.Review(decision, notes, now); err != nil {
			return err
		}
		if decision == models.AppealApproved {
			if err := challan.Waive(now); err != nil {
				return err
			}
		} else {
			if err := challan.ReopenFromDispute(); err != nil {
				return err
			}
		}
		if err := tx.Save(&challan).Error; err != nil {
			return fmt.Errorf("saving challan: %w", err)
		}
		if err := tx.Save(&appeal).Error; err != nil {
			return fmt.Errorf("saving appeal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}
