// Package detection models the camera-side collaborator that hands a
// recognized plate and violation label to the core. No computer vision
// happens here; real ANPR lives outside the service boundary.
package detection

import "errors"

// ErrNoDetection means the source could not produce a usable result.
var ErrNoDetection = errors.New("no detection available")

// Result is what a detection source reports for one frame or event.
// The core trusts the label and plate; evidence content is opaque.
type Result struct {
	LicensePlate  string  `json:"license_plate"`
	ViolationType string  `json:"violation_type"`
	Confidence    float64 `json:"confidence"`
	EvidenceRef   string  `json:"evidence_ref"`
}

// Source produces detection results from an evidence reference.
type Source interface {
	Detect(evidenceRef string) (Result, error)
}

// StaticSource always reports the configured result. Used in tests and
// as a stand-in until a real camera pipeline is wired up.
type StaticSource struct {
	Plate     string
	Violation string
}

func (s StaticSource) Detect(evidenceRef string) (Result, error) {
	if s.Plate == "" || s.Violation == "" {
		return Result{}, ErrNoDetection
	}
	return Result{
		LicensePlate:  s.Plate,
		ViolationType: s.Violation,
		Confidence:    0.92,
		EvidenceRef:   evidenceRef,
	}, nil
}
