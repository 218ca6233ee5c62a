package fines

import (
	"errors"
	"testing"
	"time"

	"autofine/internal/models"
)

type fakeCatalog map[string]float64

func (f fakeCatalog) BaseFine(violationType string) (float64, bool) {
	base, ok := f[violationType]
	return base, ok
}

type fakeHistory struct {
	counts map[string]int64
	err    error
}

func (f *fakeHistory) PriorCount(vehicleID uint, violationType string, before time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[violationType], nil
}

func newEngine(counts map[string]int64, catalog fakeCatalog) *Engine {
	return NewEngine(catalog, &fakeHistory{counts: counts})
}

func TestAssessPolicyTable(t *testing.T) {
	now := time.Now()
	catalog := fakeCatalog{"Wrong Parking": 1500}

	tests := []struct {
		name          string
		violationType string
		priorCount    int64
		wantAmount    float64
		wantRepeat    bool
		wantCourt     bool
	}{
		{"no helmet first", models.ViolationNoHelmet, 0, 1000, false, false},
		{"no helmet repeat", models.ViolationNoHelmet, 1, 2000, true, false},
		{"drunk driving first", models.ViolationDrunkDriving, 0, 0, false, true},
		{"drunk driving repeat", models.ViolationDrunkDriving, 3, 0, true, true},
		{"signal jumping first", models.ViolationSignalJumping, 0, 1000, false, false},
		{"signal jumping repeat", models.ViolationSignalJumping, 2, 5000, true, false},
		{"triple riding flat", models.ViolationTripleRiding, 4, 1000, true, false},
		{"catalog fallback", "Wrong Parking", 0, 1500, false, false},
		{"catalog fallback repeat stays flat", "Wrong Parking", 2, 1500, true, false},
		{"unknown type default", "Tinted Windows", 0, 1000, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newEngine(map[string]int64{tt.violationType: tt.priorCount}, catalog)
			got, err := engine.Assess(tt.violationType, 7, now)
			if err != nil {
				t.Fatalf("Assess returned error: %v", err)
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", got.Amount, tt.wantAmount)
			}
			if got.IsSubsequent != tt.wantRepeat {
				t.Errorf("is_subsequent = %v, want %v", got.IsSubsequent, tt.wantRepeat)
			}
			if got.CourtMandatory != tt.wantCourt {
				t.Errorf("court_mandatory = %v, want %v", got.CourtMandatory, tt.wantCourt)
			}
		})
	}
}

func TestAssessRepeatNoHelmetSetsLicenseAction(t *testing.T) {
	engine := newEngine(map[string]int64{models.ViolationNoHelmet: 1}, fakeCatalog{})
	got, err := engine.Assess(models.ViolationNoHelmet, 1, time.Now())
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}
	if got.LicenseAction != "Suspend 3 months" {
		t.Errorf("license_action = %q, want %q", got.LicenseAction, "Suspend 3 months")
	}
}

func TestAssessFreshVehicleIsNotSubsequent(t *testing.T) {
	engine := newEngine(nil, fakeCatalog{})
	got, err := engine.Assess(models.ViolationSignalJumping, 42, time.Now())
	if err != nil {
		t.Fatalf("Assess returned error: %v", err)
	}
	if got.IsSubsequent {
		t.Error("fresh vehicle must not be flagged as a repeat offender")
	}
	if got.Amount != 1000 {
		t.Errorf("amount = %v, want 1000", got.Amount)
	}
}

func TestAssessEmptyViolationType(t *testing.T) {
	engine := newEngine(nil, fakeCatalog{})
	_, err := engine.Assess("", 1, time.Now())
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAssessHistoryFailurePropagates(t *testing.T) {
	wantErr := errors.New("db down")
	engine := NewEngine(fakeCatalog{}, &fakeHistory{err: wantErr})
	_, err := engine.Assess(models.ViolationSpeeding, 1, time.Now())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped history error, got %v", err)
	}
}
