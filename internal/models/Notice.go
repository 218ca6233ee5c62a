package models

import (
	"time"

	"gorm.io/gorm"
)

// Notice is an authority-published advisory shown on the public portal.
type Notice struct {
	gorm.Model
	Scope       string    `json:"scope" gorm:"size:20;default:State" binding:"required"` // State/Central
	Title       string    `json:"title" binding:"required"`
	Body        string    `json:"body" binding:"required"`
	State       string    `json:"state"`
	City        string    `json:"city"`
	PublishedAt time.Time `json:"published_at" gorm:"index"`
}
