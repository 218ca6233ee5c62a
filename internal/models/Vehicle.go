// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	LicenseNumber   string     `json:"license_number" gorm:"uniqueIndex;size:20"`
	OwnerID         uint       `json:"owner_id" gorm:"index"`
	VehicleModel    string     `json:"model" gorm:"column:model"`
	Color           string     `json:"color"`
	VehicleType     string     `json:"vehicle_type"` // Car, Bike, Truck, Bus
	State           string     `json:"state" gorm:"default:Uttarakhand"`
	City            string     `json:"city"`
	RegistrationDate *time.Time `json:"registration_date"`
	InsuranceExpiry  *time.Time `json:"insurance_expiry"`

	// A vehicle exclusively owns its challans; deleting it takes them along.
	Challans []Challan `gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"challans,omitempty"`
}
