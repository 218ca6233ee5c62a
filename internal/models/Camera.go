package models

import "gorm.io/gorm"

// Camera is a registered traffic camera; detections reference it as the
// evidence source.
type Camera struct {
	gorm.Model
	CameraID  string  `json:"camera_id" gorm:"uniqueIndex;size:50"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsActive  bool    `json:"is_active" gorm:"default:true"`

	Challans []Challan `gorm:"foreignKey:CameraID" json:"challans,omitempty"`
}
