package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	DLNumber string `json:"dl_number" gorm:"index"` // driving licence number
	Role     string `json:"role"`                   // "owner", "admin"

	// Actor-specific relations
	Vehicles []Vehicle      `gorm:"foreignKey:OwnerID" json:"vehicles,omitempty"`
	License  *DriverLicense `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"license,omitempty"`
}
