// Package fines computes fine amounts and escalation flags for
// confirmed violations. The engine is a pure read over a vehicle's
// prior history; it never writes.
package fines

import (
	"fmt"
	"time"

	"autofine/internal/models"
)

// FallbackFine is charged when a violation type has no catalog entry.
const FallbackFine = 1000

// Catalog resolves a violation type to its base fine. Injected so
// tests can substitute fixtures for the seeded table.
type Catalog interface {
	BaseFine(violationType string) (float64, bool)
}

// History counts a vehicle's prior challans of the same violation type.
// "Prior" means created strictly before the evaluation instant.
type History interface {
	PriorCount(vehicleID uint, violationType string, before time.Time) (int64, error)
}

// Assessment is the frozen outcome of a fine computation. It is copied
// onto the challan at creation and never recomputed.
type Assessment struct {
	Amount         float64
	IsSubsequent   bool
	CourtMandatory bool
	LicenseAction  string
}

// Engine applies the escalation policy over a catalog and a history.
type Engine struct {
	catalog Catalog
	history History
}

func NewEngine(catalog Catalog, history History) *Engine {
	return &Engine{catalog: catalog, history: history}
}

// Assess computes the fine, repeat-offense flag and court flag for a
// violation observed at the given instant.
func (e *Engine) Assess(violationType string, vehicleID uint, at time.Time) (Assessment, error) {
	if violationType == "" {
		return Assessment{}, models.NewValidationError("violation_type", "must not be empty")
	}

	prior, err := e.history.PriorCount(vehicleID, violationType, at)
	if err != nil {
		return Assessment{}, fmt.Errorf("counting prior challans: %w", err)
	}
	subsequent := prior > 0

	a := Assessment{IsSubsequent: subsequent}
	switch violationType {
	case models.ViolationNoHelmet:
		a.Amount = 1000
		if subsequent {
			a.Amount = 2000
			a.LicenseAction = "Suspend 3 months"
		}
	case models.ViolationDrunkDriving:
		// Fine is irrelevant; the case goes straight to court.
		a.Amount = 0
		a.CourtMandatory = true
	case models.ViolationSignalJumping:
		a.Amount = 1000
		if subsequent {
			a.Amount = 5000
		}
	case models.ViolationTripleRiding:
		a.Amount = 1000
	default:
		if base, ok := e.catalog.BaseFine(violationType); ok {
			a.Amount = base
		} else {
			a.Amount = FallbackFine
		}
	}
	return a, nil
}
