package models

import "gorm.io/gorm"

// Known violation labels. Matching is case-sensitive; anything else is
// priced from the catalog.
const (
	ViolationNoHelmet      = "No Helmet"
	ViolationDrunkDriving  = "Drunk Driving"
	ViolationSignalJumping = "Signal Jumping"
	ViolationTripleRiding  = "Triple Riding"
	ViolationSpeeding      = "Speeding"
)

// Violation is a catalog entry mapping a violation type to its base fine.
// Reference data, seeded at startup and never mutated by the lifecycle.
type Violation struct {
	gorm.Model
	ViolationType string  `json:"violation_type" gorm:"uniqueIndex;size:100"`
	FineAmount    float64 `json:"fine_amount"`
	Description   string  `json:"description"`
}
